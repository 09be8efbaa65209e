// Package repokit provides the shared seams between services and their repos.
package repokit

import "fadet/internal/platform/store"

// Queryer is the read and write surface repos run their SQL against.
type Queryer = store.RowQuerier

// TxRunner can run a function inside a transaction. It also satisfies
// Queryer, so a service can bind its repo straight to the pool.
type TxRunner = store.TxRunner

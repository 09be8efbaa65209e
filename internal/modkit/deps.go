package modkit

import (
	"fadet/internal/modkit/repokit"
	"fadet/internal/platform/config"
	"fadet/internal/platform/logger"
	"fadet/internal/platform/store"
)

// Deps carries the shared infrastructure every module receives at build time.
// Stores are optional; modules that only normalize in memory may leave them nil.
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// ZeroOK reports whether a zero-value Deps is usable, which it is for tests
// that never touch a store.
func (d Deps) ZeroOK() bool { return true }

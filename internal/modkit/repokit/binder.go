package repokit

// Binder builds a domain repo bound to a specific Queryer. Services hold a
// binder rather than a finished repo so the same repo code can run against
// the pool or against a transaction.
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function into a Binder.
type BindFunc[T any] func(Queryer) T

// Bind calls f.
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

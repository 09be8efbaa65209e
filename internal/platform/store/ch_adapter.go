package store

import (
	"context"
	"errors"

	"fadet/internal/platform/store/ch"
)

// chClient is the surface of *ch.CH the adapter relies on, seam for tests
type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// chAdapter narrows the ch client to the store.Clickhouse seam. Inserts
// only accept the column-ordered [][]any shape the warehouse writers
// produce; anything else is a programming error surfaced at call time
type chAdapter struct {
	inner chClient
}

var _ Clickhouse = (*chAdapter)(nil)

// newCHAdapter is called by openers.go once the warehouse connection is up
func newCHAdapter(c chClient) Clickhouse {
	return &chAdapter{inner: c}
}

func (a *chAdapter) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return errors.New("store: unsupported CH insert shape (want [][]any)")
	}
	return a.inner.Insert(ctx, table, rows)
}

func (a *chAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	return a.inner.Exec(ctx, sql, args...)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r: r}, nil
}

func (a *chAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil clickhouse adapter")
	}
	return a.inner.Ping(ctx)
}

func (a *chAdapter) Close() error { return a.inner.Close() }

// chRows lifts ch.Rows to the store.Rows contract, which drops Close's
// error return
type chRows struct {
	r ch.Rows
}

func (r chRows) Next() bool             { return r.r.Next() }
func (r chRows) Scan(dest ...any) error { return r.r.Scan(dest...) }
func (r chRows) Err() error             { return r.r.Err() }
func (r chRows) Close()                 { _ = r.r.Close() }
func (r chRows) Columns() []string      { return r.r.Columns() }

package pg

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"fadet/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

const testDSN = "postgres://fadet:s3cret@db:5432/fileslog?sslmode=disable"

func TestOpen_BadURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://files-log"}, nil, nil); err == nil {
		t.Fatal("want a DSN parse error")
	}
}

func TestOpen_PoolConstructionFails(t *testing.T) {
	// newPool is a package-global seam; serialize
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("no route to host")
	})

	if _, err := Open(context.Background(), Config{URL: testDSN}, nil, nil); err == nil {
		t.Fatal("want the pool error surfaced")
	}
}

func TestOpen_AppliesConfigThroughMutator(t *testing.T) {
	testkit.Serial(t)

	stub := &pgxpool.Pool{} // never dialed; must not be closed
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return stub, nil
	})

	cfg := Config{URL: testDSN, MaxConns: 3, SlowMs: 250}

	var sawMut atomic.Bool
	p, err := Open(context.Background(), cfg, nil, func(pc *pgxpool.Config) {
		sawMut.Store(true)
		if pc.MaxConns != cfg.MaxConns {
			t.Fatalf("MaxConns = %d, want %d", pc.MaxConns, cfg.MaxConns)
		}
		pc.MaxConnIdleTime = 42 * time.Second
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if !sawMut.Load() {
		t.Fatal("pool config mutator never ran")
	}
	if p.SlowMs != cfg.SlowMs {
		t.Fatalf("SlowMs = %d, want %d", p.SlowMs, cfg.SlowMs)
	}
	if p.Pool != stub {
		t.Fatal("pool from the seam not kept")
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close() // nil receiver

	p = &PG{} // nil Pool
	p.Close()
	p.Close()
}

package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestOpen_BadBackendURLs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  Config
	}{
		{"clickhouse parse error", Config{CH: CHConfig{Enabled: true, URL: "://bad"}}},
		{"postgres parse error", Config{PG: PGConfig{Enabled: true, URL: "://bad", MaxConns: 1}}},
		{"first failure short circuits", Config{
			PG: PGConfig{Enabled: true, URL: "://bad"},
			CH: CHConfig{Enabled: true, URL: "://bad"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, err := Open(context.Background(), tc.cfg)
			if err == nil {
				t.Fatalf("want Open error, got store=%#v", s)
			}
			if s != nil {
				t.Fatalf("want nil store on error, got %#v", s)
			}
		})
	}
}

func TestOpen_NoBackends(t *testing.T) {
	t.Parallel()

	var zl zerolog.Logger
	s, err := Open(context.Background(), Config{}, WithLogger(zl))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s == nil {
		t.Fatal("Open returned nil store")
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("disabled backends should stay nil: PG=%v CH=%v", s.PG, s.CH)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store: %v", err)
	}
}

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fadet/internal/adapters/geocode"
	"fadet/internal/core/canon"
	"fadet/internal/services/geocode/domain"
)

func backendAndService(t *testing.T, hits *atomic.Int32) (*httptest.Server, *Svc) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") == "GHOST" {
			_, _ = w.Write([]byte(`{"features":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[55.5,-21.1]}}]}`))
	}))
	t.Cleanup(srv.Close)

	client := geocode.NewClient(geocode.Options{
		BaseURL:     srv.URL,
		MinInterval: time.Nanosecond,
	})
	return srv, New(client)
}

func TestResolve_SplitsResolvedAndUnresolved(t *testing.T) {
	_, s := backendAndService(t, nil)

	out, err := s.Resolve(context.Background(), domain.ResolveInput{
		Addresses: []string{"12 RUE DES PALMIERS 97430 LE TAMPON", "GHOST"},
	})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(out.Resolved) != 1 || out.Resolved[0].Latitude != "-21.100000" {
		t.Fatalf("resolved = %+v", out.Resolved)
	}
	if len(out.Unresolved) != 1 || out.Unresolved[0] != "GHOST" {
		t.Fatalf("unresolved = %v", out.Unresolved)
	}
}

func TestResolve_SentinelNeverQueried(t *testing.T) {
	var hits atomic.Int32
	_, s := backendAndService(t, &hits)

	out, err := s.Resolve(context.Background(), domain.ResolveInput{
		Addresses: []string{canon.Indetermine},
	})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("sentinel reached the backend, hits = %d", hits.Load())
	}
	if len(out.Unresolved) != 1 || out.Unresolved[0] != canon.Indetermine {
		t.Fatalf("unresolved = %v", out.Unresolved)
	}
}

func TestResolve_DuplicatesResolveOnce(t *testing.T) {
	var hits atomic.Int32
	_, s := backendAndService(t, &hits)

	addr := "3 ALLEE DES FLAMBOYANTS 97410 ST PIERRE"
	out, err := s.Resolve(context.Background(), domain.ResolveInput{
		Addresses: []string{addr, addr, addr},
	})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("backend hits = %d", hits.Load())
	}
	if len(out.Resolved) != 1 {
		t.Fatalf("resolved = %+v", out.Resolved)
	}
}

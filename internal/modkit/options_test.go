package modkit

import (
	"net/http"
	"testing"

	"fadet/internal/modkit/httpkit"
)

func tagMW(log *[]string, tag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*log = append(*log, tag)
			if next != nil {
				next.ServeHTTP(w, r)
			}
		})
	}
}

func TestWithNameAndPrefix(t *testing.T) {
	t.Parallel()

	var c buildCfg
	WithName("ingest")(&c)
	WithPrefix("/ingest")(&c)

	if c.name != "ingest" {
		t.Fatalf("name = %q, want ingest", c.name)
	}
	if c.prefix != "/ingest" {
		t.Fatalf("prefix = %q, want /ingest", c.prefix)
	}
}

func TestWithMiddlewares_AccumulatesInOrder(t *testing.T) {
	t.Parallel()

	var log []string
	var c buildCfg
	WithMiddlewares(tagMW(&log, "request-id"), tagMW(&log, "timeout"))(&c)
	WithMiddlewares(tagMW(&log, "compress"))(&c)

	if len(c.mw) != 3 {
		t.Fatalf("middleware count = %d, want 3", len(c.mw))
	}

	var h http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i := len(c.mw) - 1; i >= 0; i-- {
		h = c.mw[i](h)
	}
	h.ServeHTTP(nil, nil)

	want := []string{"request-id", "timeout", "compress"}
	if len(log) != len(want) {
		t.Fatalf("calls = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestWithPorts_KeepsConcreteType(t *testing.T) {
	t.Parallel()

	type ports struct {
		Files string
		Batch int
	}

	var c buildCfg
	WithPorts(ports{Files: "catalog", Batch: 500})(&c)

	got, ok := c.ports.(ports)
	if !ok {
		t.Fatalf("ports type = %T, want ports", c.ports)
	}
	if got.Files != "catalog" || got.Batch != 500 {
		t.Fatalf("ports value = %+v", got)
	}
}

func TestWithSubrouterAndRegister(t *testing.T) {
	t.Parallel()

	subCalls, regCalls := 0, 0
	var c buildCfg
	WithSubrouter(func(r httpkit.Router) httpkit.Router {
		subCalls++
		return r
	})(&c)
	WithRegister(func(r httpkit.Router) {
		regCalls++
	})(&c)

	if c.subrouter == nil || c.register == nil {
		t.Fatal("subrouter and register hooks should both be set")
	}

	var r httpkit.Router
	if out := c.subrouter(r); out != r {
		t.Fatal("subrouter hook should return the router it was given")
	}
	c.register(r)

	if subCalls != 1 || regCalls != 1 {
		t.Fatalf("hook calls = (%d, %d), want (1, 1)", subCalls, regCalls)
	}
}

func TestOptions_Compose(t *testing.T) {
	t.Parallel()

	var log []string
	opts := []Option{
		WithName("geocode"),
		WithPrefix("/zones"),
		WithMiddlewares(tagMW(&log, "nocache")),
		WithPorts(map[string]int{"lookups": 1}),
	}

	var c buildCfg
	for _, opt := range opts {
		opt(&c)
	}

	if c.name != "geocode" || c.prefix != "/zones" {
		t.Fatalf("cfg = %+v", c)
	}
	if len(c.mw) != 1 {
		t.Fatalf("middleware count = %d, want 1", len(c.mw))
	}
	if _, ok := c.ports.(map[string]int); !ok {
		t.Fatalf("ports type = %T, want map[string]int", c.ports)
	}
}

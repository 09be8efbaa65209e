package httpkit

import (
	"net/http"
	"testing"

	phttp "fadet/internal/platform/net/http"
)

type mountCall struct {
	verb string
	path string
}

// mountRouter records route registrations instead of serving them
type mountRouter struct {
	prefixes []string
	useCalls int
	mwSeen   int
	calls    []mountCall
}

func (f *mountRouter) record(verb, path string) {
	f.calls = append(f.calls, mountCall{verb: verb, path: path})
}

func (f *mountRouter) Mux() http.Handler { return http.NewServeMux() }

func (f *mountRouter) Route(prefix string, fn func(Router)) {
	f.prefixes = append(f.prefixes, prefix)
	fn(f)
}

func (f *mountRouter) Group(fn func(Router)) { fn(f) }

func (f *mountRouter) Use(mw ...func(http.Handler) http.Handler) {
	f.useCalls++
	f.mwSeen = len(mw)
}

func (f *mountRouter) Handle(path string, h http.Handler)    { f.record("HANDLE", path) }
func (f *mountRouter) Get(path string, h phttp.Handler)      { f.record("GET", path) }
func (f *mountRouter) Post(path string, h phttp.Handler)     { f.record("POST", path) }
func (f *mountRouter) Put(path string, h phttp.Handler)      { f.record("PUT", path) }
func (f *mountRouter) Patch(path string, h phttp.Handler)    { f.record("PATCH", path) }
func (f *mountRouter) Delete(path string, h phttp.Handler)   { f.record("DELETE", path) }
func (f *mountRouter) Options(path string, h phttp.Handler)  { f.record("OPTIONS", path) }
func (f *mountRouter) Head(path string, h phttp.Handler)     { f.record("HEAD", path) }

func noContent(*http.Request) phttp.Response { return phttp.NoContent() }

func TestMountUnder_RoutesPrefixAndAppliesMiddleware(t *testing.T) {
	root := &mountRouter{}

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }

	MountUnder(root, "/api/v1", []func(http.Handler) http.Handler{mwA, mwB}, func(sub Router) {
		sub.Get("/files", phttp.Handle(noContent))
		sub.Post("/ingest/batch", phttp.Handle(noContent))
	})

	if len(root.prefixes) != 1 || root.prefixes[0] != "/api/v1" {
		t.Fatalf("Route prefixes = %v, want one /api/v1", root.prefixes)
	}
	if root.useCalls != 1 || root.mwSeen != 2 {
		t.Fatalf("Use calls = %d with %d middlewares, want one call with 2", root.useCalls, root.mwSeen)
	}
	want := []mountCall{{"GET", "/files"}, {"POST", "/ingest/batch"}}
	if len(root.calls) != len(want) {
		t.Fatalf("registrations = %+v", root.calls)
	}
	for i := range want {
		if root.calls[i] != want[i] {
			t.Fatalf("registration %d = %+v, want %+v", i, root.calls[i], want[i])
		}
	}
}

func TestMountUnder_NoMiddlewareSkipsUse(t *testing.T) {
	root := &mountRouter{}

	MountUnder(root, "/files", nil, func(sub Router) {
		sub.Delete("/{file_id}", phttp.Handle(noContent))
	})

	if root.useCalls != 0 {
		t.Fatalf("Use called %d times with empty middleware", root.useCalls)
	}
	if len(root.prefixes) != 1 || root.prefixes[0] != "/files" {
		t.Fatalf("Route prefixes = %v", root.prefixes)
	}
	if len(root.calls) != 1 || root.calls[0] != (mountCall{"DELETE", "/{file_id}"}) {
		t.Fatalf("registrations = %+v", root.calls)
	}
}

package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func serveOn(r Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, req)
	return rr
}

func textHandler(status int, body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func markHeader(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(name, "1")
			next.ServeHTTP(w, req)
		})
	}
}

func TestAdaptChi_AllVerbsDispatch(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Get("/files", textHandler(200, "list"))
	r.Post("/batch", textHandler(201, "queued"))
	r.Put("/files/f1", textHandler(200, "put"))
	r.Patch("/files/f1", textHandler(200, "patch"))
	r.Delete("/files/f1", textHandler(204, ""))
	r.Head("/files", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.Header().Set("X-Head", "1")
	})
	r.Options("/files", textHandler(204, ""))
	r.Handle("/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("raw"))
	}))

	cases := []struct {
		method, path, body string
		status             int
	}{
		{stdhttp.MethodGet, "/files", "list", 200},
		{stdhttp.MethodPost, "/batch", "queued", 201},
		{stdhttp.MethodPut, "/files/f1", "put", 200},
		{stdhttp.MethodPatch, "/files/f1", "patch", 200},
		{stdhttp.MethodDelete, "/files/f1", "", 204},
		{stdhttp.MethodOptions, "/files", "", 204},
		{stdhttp.MethodGet, "/raw", "raw", 200},
	}
	for _, c := range cases {
		rr := serveOn(r, c.method, c.path)
		if rr.Code != c.status || rr.Body.String() != c.body {
			t.Fatalf("%s %s => code=%d body=%q", c.method, c.path, rr.Code, rr.Body.String())
		}
	}

	rr := serveOn(r, stdhttp.MethodHead, "/files")
	if rr.Code != 200 || rr.Body.Len() != 0 || rr.Header().Get("X-Head") != "1" {
		t.Fatalf("HEAD /files => code=%d len=%d", rr.Code, rr.Body.Len())
	}
}

func TestAdaptChi_MiddlewareScoping(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(markHeader("X-Root"))
	r.Get("/ping", textHandler(200, "pong"))

	r.Group(func(gr Router) {
		gr.Use(markHeader("X-Group"))
		gr.Get("/grouped", textHandler(200, "g"))
	})

	r.Route("/api", func(sr Router) {
		sr.Use(markHeader("X-Api"))
		sr.Get("/files", textHandler(200, "files"))
	})

	rr := serveOn(r, stdhttp.MethodGet, "/ping")
	if rr.Header().Get("X-Root") != "1" || rr.Header().Get("X-Group") != "" {
		t.Fatalf("/ping headers: root=%q group=%q", rr.Header().Get("X-Root"), rr.Header().Get("X-Group"))
	}

	rr = serveOn(r, stdhttp.MethodGet, "/grouped")
	if rr.Header().Get("X-Root") != "1" || rr.Header().Get("X-Group") != "1" {
		t.Fatalf("/grouped headers: root=%q group=%q", rr.Header().Get("X-Root"), rr.Header().Get("X-Group"))
	}
	if rr.Header().Get("X-Api") != "" {
		t.Fatal("route middleware leaked into group")
	}

	rr = serveOn(r, stdhttp.MethodGet, "/api/files")
	if rr.Code != 200 || rr.Body.String() != "files" {
		t.Fatalf("/api/files => code=%d body=%q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Root") != "1" || rr.Header().Get("X-Api") != "1" {
		t.Fatalf("/api/files headers: root=%q api=%q", rr.Header().Get("X-Root"), rr.Header().Get("X-Api"))
	}
}

func TestAdaptChi_NestedSubrouters(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Route("/api", func(api Router) {
		if api.Mux() == nil {
			t.Fatal("subrouter Mux() returned nil")
		}
		api.Route("/v1", func(v1 Router) {
			v1.Get("/files", textHandler(200, "v1"))
			v1.Group(func(admin Router) {
				admin.Use(markHeader("X-Admin"))
				admin.Delete("/files/{file_id}", textHandler(204, ""))
			})
		})
	})

	rr := serveOn(r, stdhttp.MethodGet, "/api/v1/files")
	if rr.Code != 200 || rr.Body.String() != "v1" {
		t.Fatalf("GET /api/v1/files => code=%d body=%q", rr.Code, rr.Body.String())
	}

	rr = serveOn(r, stdhttp.MethodDelete, "/api/v1/files/f1")
	if rr.Code != 204 || rr.Header().Get("X-Admin") != "1" {
		t.Fatalf("DELETE /api/v1/files/f1 => code=%d admin=%q", rr.Code, rr.Header().Get("X-Admin"))
	}
}

func TestAdaptChi_URLParamsReachHandlers(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Route("/files", func(sr Router) {
		sr.Get("/{file_id}", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.WriteHeader(200)
			_, _ = w.Write([]byte(chi.URLParam(req, "file_id")))
		})
	})

	rr := serveOn(r, stdhttp.MethodGet, "/files/f-42")
	if rr.Code != 200 || rr.Body.String() != "f-42" {
		t.Fatalf("GET /files/f-42 => code=%d body=%q", rr.Code, rr.Body.String())
	}
}

package middleware_test

import (
	"compress/flate"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fadet/internal/platform/net/middleware"
)

func serve(mw func(http.Handler) http.Handler, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mw(h).ServeHTTP(rr, req)
	return rr
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestWrappers_ReturnHandlers(t *testing.T) {
	if middleware.RequestID() == nil ||
		middleware.RealIP() == nil ||
		middleware.Timeout(time.Second) == nil ||
		middleware.NoCache() == nil ||
		middleware.RedirectSlashes() == nil ||
		middleware.StripSlashes() == nil ||
		middleware.AllowContentType("application/json") == nil ||
		middleware.Throttle(10) == nil ||
		middleware.Heartbeat("/health") == nil {
		t.Fatal("expected non nil handlers from wrappers")
	}
}

func TestCompress_EncodesWhenAccepted(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, strings.Repeat(`{"dossier_id":"D-100"}`, 256))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := serve(middleware.Compress(flate.BestSpeed), h, req)
	if rr.Result().Header.Get("Content-Encoding") == "" {
		t.Fatal("expected a Content-Encoding on a compressible response")
	}
}

func TestAllowContentType_RejectsUnknownBodies(t *testing.T) {
	mw := middleware.AllowContentType("application/json")

	req := httptest.NewRequest(http.MethodPost, "/ingest/batch", strings.NewReader("a,b,c"))
	req.Header.Set("Content-Type", "text/csv")
	if rr := serve(mw, okHandler(), req); rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("csv body: status = %d, want 415", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/ingest/batch", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if rr := serve(mw, okHandler(), req); rr.Code != http.StatusOK {
		t.Fatalf("json body: status = %d, want 200", rr.Code)
	}

	// bodyless requests pass regardless of header
	req = httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	if rr := serve(mw, okHandler(), req); rr.Code != http.StatusOK {
		t.Fatalf("bodyless: status = %d, want 200", rr.Code)
	}
}

func TestCORS_DefaultsCoverDossierHeader(t *testing.T) {
	cors := middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: []string{"https://fadet.example.org"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/files", nil)
	req.Header.Set("Origin", "https://fadet.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Dossier-ID")

	rr := serve(cors, okHandler(), req)

	if got := rr.Result().Header.Get("Access-Control-Allow-Origin"); got != "https://fadet.example.org" {
		t.Fatalf("Allow-Origin = %q", got)
	}
	allowed := rr.Result().Header.Get("Access-Control-Allow-Headers")
	if !strings.Contains(strings.ToLower(allowed), "x-dossier-id") {
		t.Fatalf("Allow-Headers = %q, want X-Dossier-ID included", allowed)
	}
}

func TestThrottle_PassesUnderLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	if rr := serve(middleware.Throttle(2), okHandler(), req); rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestHeartbeat_AnswersHealthPath(t *testing.T) {
	mw := middleware.Heartbeat("/health")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if rr := serve(mw, okHandler(), req); rr.Code != http.StatusOK {
		t.Fatalf("health: status = %d", rr.Code)
	}
}

package middleware

import (
	"net/http"

	"fadet/internal/platform/logger"
	pnet "fadet/internal/platform/net"
)

// DossierScope lifts the X-Dossier-ID header onto the request context so
// response envelopes and log lines carry the dossier a request works on.
// Requests without the header pass through untouched; body-level dossier
// ids still apply where a payload names one.
func DossierScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Dossier-ID")
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := pnet.WithRequest(r.Context(), "", id)
		ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

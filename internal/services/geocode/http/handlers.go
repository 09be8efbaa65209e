// Package http provides http transport for geocode
package http

import (
	stdhttp "net/http"

	"fadet/internal/modkit/httpkit"
	"fadet/internal/services/geocode/domain"
	svc "fadet/internal/services/geocode/service"
)

// Register mounts geocode endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ResolveInput](r, "/resolve", h.resolve)
}

type handlers struct{ svc svc.Service }

func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveInput) (any, error) {
	return h.svc.Resolve(r.Context(), in)
}

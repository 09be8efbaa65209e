// Package http provides http transport for catalog
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"fadet/internal/modkit/httpkit"
	"fadet/internal/services/catalog/domain"
	svc "fadet/internal/services/catalog/service"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ListInput](r, "/files", h.list)
	httpkit.Get(r, "/files/{file_id}", h.get)
	httpkit.PostJSON[domain.DeleteInput](r, "/files/delete", h.del)
}

type handlers struct{ svc svc.Service }

func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "file_id"))
}

func (h *handlers) del(r *stdhttp.Request, in domain.DeleteInput) (any, error) {
	return h.svc.DeleteFileData(r.Context(), in)
}

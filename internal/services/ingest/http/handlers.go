// Package http provides http transport for ingest
package http

import (
	stdhttp "net/http"

	"fadet/internal/modkit/httpkit"
	"fadet/internal/platform/logger"
	"fadet/internal/services/ingest/domain"
	svc "fadet/internal/services/ingest/service"
)

// Register mounts ingest endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.BatchInput](r, "/batch", h.upload)
}

type handlers struct{ svc svc.Service }

func (h *handlers) upload(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	ctx := logger.WithRequest(r.Context(), "", in.DossierID)
	return h.svc.UploadBatch(ctx, in)
}

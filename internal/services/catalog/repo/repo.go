// Package repo provides the catalog repository implementation.
package repo

import (
	"context"

	"fadet/internal/modkit/repokit"
	perr "fadet/internal/platform/errors"
	"fadet/internal/platform/store"
	"fadet/internal/services/catalog/domain"
)

type pg struct{ q repokit.Queryer }

// NewPG returns the Postgres binder for this repo
func NewPG() repokit.Binder[Storage] {
	return repokit.BindFunc[Storage](func(q repokit.Queryer) Storage { return &pg{q: q} })
}

// Storage defines the catalog repository
type Storage interface {
	ListByDossier(ctx context.Context, dossierID string) ([]domain.FileEntry, error)
	GetByID(ctx context.Context, fileID string) (domain.FileEntry, error)
	DeleteLog(ctx context.Context, fileID string) error
}

const entryCols = `
	file_id, dossier_id, filename, file_type,
	target_name, target_identifier, uploaded_at, uploaded_by, row_count`

// ListByDossier implements Storage
func (s *pg) ListByDossier(ctx context.Context, dossierID string) ([]domain.FileEntry, error) {
	return store.StructsByName[domain.FileEntry](ctx, s.q, `
		SELECT `+entryCols+`
		FROM files_log
		WHERE dossier_id = $1
		ORDER BY uploaded_at DESC`, dossierID)
}

// GetByID implements Storage
func (s *pg) GetByID(ctx context.Context, fileID string) (domain.FileEntry, error) {
	return store.StructByName[domain.FileEntry](ctx, s.q, `
		SELECT `+entryCols+`
		FROM files_log
		WHERE file_id = $1`, fileID)
}

// DeleteLog implements Storage
func (s *pg) DeleteLog(ctx context.Context, fileID string) error {
	if err := store.ExecOne(ctx, s.q, `DELETE FROM files_log WHERE file_id = $1`, fileID); err != nil {
		return perr.FromPostgresf(err, "files_log delete %s", fileID)
	}
	return nil
}

// Package repo provides the files-log repository for ingest.
package repo

import (
	"context"

	"fadet/internal/modkit/repokit"
	perr "fadet/internal/platform/errors"
	pstrings "fadet/internal/platform/strings"
	"fadet/internal/platform/store"
	"fadet/internal/services/ingest/domain"
)

type pg struct{ q repokit.Queryer }

// NewPG returns the Postgres binder for this repo
func NewPG() repokit.Binder[Storage] {
	return repokit.BindFunc[Storage](func(q repokit.Queryer) Storage { return &pg{q: q} })
}

// Storage records ingested files in the dossier files log
type Storage interface {
	Insert(ctx context.Context, e domain.FileLog) error
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, e domain.FileLog) error {
	err := store.ExecOne(ctx, s.q, `
		INSERT INTO files_log
			(file_id, dossier_id, filename, file_type,
			target_name, target_identifier, uploaded_by, row_count, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8, now())`,
		e.FileID, e.DossierID, e.Filename, e.FileType,
		pstrings.SQLNull(e.TargetName), pstrings.SQLNull(e.TargetIdentifier),
		pstrings.SQLNull(e.UploadedBy), e.RowCount,
	)
	if err != nil {
		return perr.FromPostgresf(err, "files_log insert %s", e.Filename)
	}
	return nil
}

// Package service contains the catalog workflows
package service

import (
	"context"
	"strings"

	"fadet/internal/core/operators"
	"fadet/internal/modkit/repokit"
	perr "fadet/internal/platform/errors"
	"fadet/internal/platform/logger"
	"fadet/internal/platform/store"
	"fadet/internal/services/catalog/domain"
	"fadet/internal/services/catalog/repo"
	ingestsvc "fadet/internal/services/ingest/service"
)

// Service defines the service contract for catalog
type Service interface {
	domain.QueryPort
	domain.AdminPort
}

// Svc implements the Service interface
type Svc struct {
	Repo repo.Storage
	db   repokit.TxRunner
	ch   store.Clickhouse
}

// New creates a new catalog service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], chdb store.Clickhouse) *Svc {
	if db == nil {
		panic("catalog.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("catalog.Service requires a non nil Storage binder")
	}
	if chdb == nil {
		panic("catalog.Service requires a non nil Clickhouse seam")
	}
	return &Svc{Repo: binder.Bind(db), db: db, ch: chdb}
}

// List groups a dossier's ingested files by requisition type
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.Listing, error) {
	entries, err := s.Repo.ListByDossier(ctx, in.DossierID)
	if err != nil {
		return domain.Listing{}, err
	}

	var out domain.Listing
	for _, e := range entries {
		switch {
		case strings.Contains(e.FileType, "HREF"):
			out.Zones = append(out.Zones, e)
		case e.FileType == "MT24":
			out.Handsets = append(out.Handsets, e)
		default:
			out.Lines = append(out.Lines, e)
		}
	}
	return out, nil
}

// Get returns one file log entry by id
func (s *Svc) Get(ctx context.Context, fileID string) (domain.FileEntry, error) {
	entry, err := s.Repo.GetByID(ctx, fileID)
	if err != nil {
		return domain.FileEntry{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "file %s not found in log", fileID)
	}
	return entry, nil
}

// DeleteFileData purges one file: its raw warehouse rows first, then the
// log entry. The warehouse sweep covers every table the file's type can
// land in, keyed on dossier id and source filename, so the purge stays
// correct without knowing which operator format produced the rows
func (s *Svc) DeleteFileData(ctx context.Context, in domain.DeleteInput) (domain.DeleteReport, error) {
	entry, err := s.Repo.GetByID(ctx, in.FileID)
	if err != nil {
		return domain.DeleteReport{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "file %s not found in log", in.FileID)
	}

	for _, table := range tablesFor(entry.FileType) {
		err := s.ch.Exec(ctx,
			"ALTER TABLE "+table+" DELETE WHERE DOSSIER_ID = ? AND SOURCE_FILENAME = ?",
			entry.DossierID, entry.Filename,
		)
		if err != nil {
			return domain.DeleteReport{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "warehouse delete failed on %s", table)
		}
	}

	if err := s.Repo.DeleteLog(ctx, entry.FileID); err != nil {
		return domain.DeleteReport{}, err
	}

	logger.C(ctx).Info().
		Str("file_id", entry.FileID).
		Str("filename", entry.Filename).
		Str("file_type", entry.FileType).
		Msg("catalog: file purged")

	return domain.DeleteReport{
		FileID:        entry.FileID,
		Filename:      entry.Filename,
		TablesCleaned: tablesFor(entry.FileType),
	}, nil
}

// tablesFor returns every warehouse table rows of that file type can sit in
func tablesFor(fileType string) []string {
	if strings.Contains(fileType, "HREF") || strings.Contains(fileType, "Zone") {
		return []string{
			operators.ZoneSFR.WarehouseTable(),
			operators.ZoneOrangeEvents.WarehouseTable(),
			operators.ZoneOrangeCells.WarehouseTable(),
			operators.ZoneBouygues.WarehouseTable(),
		}
	}
	return []string{ingestsvc.TableORRE, ingestsvc.TableSRR, ingestsvc.TableTCOI}
}

// Package service contains the ingest workflows
package service

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"fadet/internal/adapters/ingest/tabular"
	"fadet/internal/core/canon"
	"fadet/internal/core/operators"
	"fadet/internal/modkit/repokit"
	perr "fadet/internal/platform/errors"
	"fadet/internal/platform/logger"
	"fadet/internal/platform/store"
	"fadet/internal/services/ingest/domain"
	"fadet/internal/services/ingest/repo"
)

// Warehouse tables for the canonical CDR formats
const (
	TableORRE = "cdr_orre"
	TableSRR  = "cdr_srr"
	TableTCOI = "cdr_tcoi"
)

// Service defines the service contract for ingest
type Service interface{ domain.UploaderPort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Storage
	db   repokit.TxRunner
	ch   store.Clickhouse
}

// New creates a new ingest service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], chdb store.Clickhouse) *Svc {
	if db == nil {
		panic("ingest.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ingest.Service requires a non nil Storage binder")
	}
	if chdb == nil {
		panic("ingest.Service requires a non nil Clickhouse seam")
	}
	return &Svc{Repo: binder.Bind(db), db: db, ch: chdb}
}

// UploadBatch normalizes every file of the batch and lands the canonical
// rows in the warehouse plus one files-log entry per file. Failures are
// per file: a file that cannot be read or recognized is reported and
// skipped, the siblings still go through
func (s *Svc) UploadBatch(ctx context.Context, in domain.BatchInput) (domain.BatchReport, error) {
	report := domain.BatchReport{DossierID: in.DossierID}

	for _, f := range in.Files {
		fr := s.ingestOne(ctx, in, f)
		if fr.Error != "" {
			logger.C(ctx).Warn().
				Str("filename", fr.Filename).
				Str("error", fr.Error).
				Msg("ingest: file rejected")
		} else {
			logger.C(ctx).Info().
				Str("filename", fr.Filename).
				Str("table", fr.Table).
				Int("rows", fr.RowCount).
				Msg("ingest: file stored")
		}
		report.Files = append(report.Files, fr)
	}
	return report, nil
}

func (s *Svc) ingestOne(ctx context.Context, in domain.BatchInput, f domain.FileUpload) domain.FileReport {
	fr := domain.FileReport{Filename: f.Name}

	table, rows, rowCount, err := s.normalize(in, f)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}

	if err := s.ch.Insert(ctx, table, rows); err != nil {
		fr.Error = perr.Wrapf(err, perr.ErrorCodeUnavailable, "warehouse insert failed").Error()
		return fr
	}

	entry := domain.FileLog{
		FileID:           uuid.NewString(),
		DossierID:        in.DossierID,
		Filename:         f.Name,
		FileType:         string(in.Kind),
		TargetName:       in.TargetName,
		TargetIdentifier: in.TargetIdentifier,
		UploadedBy:       in.UploadedBy,
		RowCount:         rowCount,
	}
	if err := s.Repo.Insert(ctx, entry); err != nil {
		fr.Error = perr.Wrapf(err, perr.ErrorCodeUnavailable, "files log insert failed").Error()
		return fr
	}

	fr.FileID = entry.FileID
	fr.Table = table
	fr.RowCount = rowCount
	return fr
}

// normalize decodes and normalizes one upload, returning the warehouse
// table and its insert rows
func (s *Svc) normalize(in domain.BatchInput, f domain.FileUpload) (string, [][]any, int, error) {
	switch in.Format {
	case operators.FormatORRE:
		t, err := tabular.ReadCSV(bytes.NewReader(f.Data), operators.CSVOptionsFor(in.Format))
		if err != nil {
			return "", nil, 0, err
		}
		out, err := operators.NormalizeORRE(t)
		if err != nil {
			return "", nil, 0, err
		}
		return TableORRE, canonicalRows(out, in.DossierID, f.Name), len(out.Rows), nil

	case operators.FormatTCOI:
		t, err := tabular.ReadCSV(bytes.NewReader(f.Data), operators.CSVOptionsFor(in.Format))
		if err != nil {
			return "", nil, 0, err
		}
		out, err := operators.NormalizeTCOI(t)
		if err != nil {
			return "", nil, 0, err
		}
		return TableTCOI, canonicalRows(out, in.DossierID, f.Name), len(out.Rows), nil

	case operators.FormatSRR:
		if len(f.SitesData) == 0 {
			return "", nil, 0, perr.UnrecognizedFormatf("SRR upload %q is missing its site directory workbook", f.Name)
		}
		comms, err := tabular.ReadXLSX(bytes.NewReader(f.Data), "")
		if err != nil {
			return "", nil, 0, err
		}
		sites, err := tabular.ReadXLSX(bytes.NewReader(f.SitesData), "")
		if err != nil {
			return "", nil, 0, err
		}
		out, err := operators.NormalizeSRR(comms, sites)
		if err != nil {
			return "", nil, 0, err
		}
		return TableSRR, canonicalRows(out, in.DossierID, f.Name), len(out.Rows), nil

	case operators.FormatZone:
		t, err := tabular.ReadCSV(bytes.NewReader(f.Data), operators.CSVOptionsFor(in.Format))
		if err != nil {
			return "", nil, 0, err
		}
		variant, err := operators.ClassifyZone(t.Columns)
		if err != nil {
			return "", nil, 0, err
		}
		rows, err := zoneRows(t, in, f.Name)
		if err != nil {
			return "", nil, 0, err
		}
		return variant.WarehouseTable(), rows, len(t.Rows), nil

	default:
		return "", nil, 0, perr.UnrecognizedFormatf("unknown operator format %q", in.Format)
	}
}

// canonicalRows flattens a normalized table into warehouse insert rows:
// dossier id and source filename first, then the canonical columns in
// warehouse order. Labels the format never produces carry the sentinel
func canonicalRows(t *tabular.Table, dossierID, source string) [][]any {
	rows := make([][]any, 0, len(t.Rows))
	for r := range t.Rows {
		row := make([]any, 0, 2+len(canon.Columns))
		row = append(row, dossierID, source)
		for _, col := range canon.Columns {
			if !t.Has(col) {
				row = append(row, canon.Indetermine)
				continue
			}
			row = append(row, t.Cell(r, col))
		}
		rows = append(rows, row)
	}
	return rows
}

// zoneRows stamps the zone context onto the dump and flattens it into the
// sub-variant table: the five enrichment columns plus the raw operator row
// as a JSON payload, since each sub-variant carries its own column set
func zoneRows(t *tabular.Table, in domain.BatchInput, source string) ([][]any, error) {
	native := append([]string(nil), t.Columns...)

	operators.TagZone(t, operators.ZoneContext{
		DossierID:      in.DossierID,
		SourceFilename: source,
		ZoneName:       in.Zone.Name,
		ZoneNum:        in.Zone.Num,
		ZoneCity:       in.Zone.City,
	})

	rows := make([][]any, 0, len(t.Rows))
	for r := range t.Rows {
		payload := make(map[string]string, len(native))
		for _, col := range native {
			payload[col] = t.Cell(r, col)
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "zone payload marshal failed")
		}
		rows = append(rows, []any{
			t.Cell(r, operators.ColDossierID),
			t.Cell(r, operators.ColSourceFilename),
			t.Cell(r, operators.ColZoneName),
			t.Cell(r, operators.ColZoneNum),
			t.Cell(r, operators.ColZoneCity),
			string(b),
		})
	}
	return rows, nil
}

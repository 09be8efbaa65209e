// Package domain defines the types and interfaces for the ingest service
package domain

import "fadet/internal/core/operators"

// RequisitionKind is the investigation-side classification of an upload
type RequisitionKind string

// Requisition kinds as they appear in the files log
const (
	KindLine    RequisitionKind = "MT20" // line detail (MSISDN)
	KindHandset RequisitionKind = "MT24" // handset detail (IMEI)
	KindZone    RequisitionKind = "HREF" // zone / cell-tower dump
)

// FileUpload is one file of a batch. Data is raw bytes, base64 over JSON.
// SitesData carries the site directory workbook that pairs with an SFR
// communications workbook; the other formats leave it empty
type FileUpload struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Data []byte `json:"data" validate:"required"`

	SitesName string `json:"sites_name,omitempty" validate:"omitempty,min=1,max=255"`
	SitesData []byte `json:"sites_data,omitempty"`
}

// ZoneMeta is the zone context stamped onto HREF uploads
type ZoneMeta struct {
	Name string `json:"name" validate:"omitempty,max=200"`
	Num  string `json:"num" validate:"omitempty,max=50"`
	City string `json:"city" validate:"omitempty,max=100"`
}

// BatchInput is one multi-file upload for a dossier. All files of a batch
// share the operator format and the target metadata
type BatchInput struct {
	DossierID string           `json:"dossier_id" validate:"required,min=1,max=100"`
	Format    operators.Format `json:"format" validate:"required,oneof=ORRE SRR TCOI ZONE"`
	Kind      RequisitionKind  `json:"kind" validate:"required,oneof=MT20 MT24 HREF"`

	TargetName       string `json:"target_name" validate:"omitempty,max=200"`
	TargetIdentifier string `json:"target_identifier" validate:"omitempty,msisdn"`
	UploadedBy       string `json:"uploaded_by" validate:"required,max=200"`

	Zone ZoneMeta `json:"zone,omitempty"`

	Files []FileUpload `json:"files" validate:"required,min=1,dive"`
}

// FileReport is the per-file outcome of a batch. A failed file carries its
// error here; it never aborts the siblings
type FileReport struct {
	Filename string `json:"filename"`
	FileID   string `json:"file_id,omitempty"`
	Table    string `json:"table,omitempty"`
	RowCount int    `json:"row_count"`
	Error    string `json:"error,omitempty"`
}

// BatchReport summarizes one upload batch
type BatchReport struct {
	DossierID string       `json:"dossier_id"`
	Files     []FileReport `json:"files"`
}

// FileLog is one files-log row
type FileLog struct {
	FileID           string
	DossierID        string
	Filename         string
	FileType         string
	TargetName       string
	TargetIdentifier string
	UploadedBy       string
	RowCount         int
}

// Package domain defines the types and interfaces for the catalog service
package domain

import "time"

// FileEntry is one row of the dossier files log
type FileEntry struct {
	FileID           string    `db:"file_id" json:"file_id"`
	DossierID        string    `db:"dossier_id" json:"dossier_id"`
	Filename         string    `db:"filename" json:"filename"`
	FileType         string    `db:"file_type" json:"file_type"`
	TargetName       string    `db:"target_name" json:"target_name"`
	TargetIdentifier string    `db:"target_identifier" json:"target_identifier"`
	UploadedAt       time.Time `db:"uploaded_at" json:"uploaded_at"`
	UploadedBy       string    `db:"uploaded_by" json:"uploaded_by"`
	RowCount         int       `db:"row_count" json:"row_count"`
}

// ListInput selects a dossier's files
type ListInput struct {
	DossierID string `json:"dossier_id" validate:"required,min=1,max=100"`
}

// Listing groups a dossier's files by requisition type, newest first
type Listing struct {
	Lines    []FileEntry `json:"lines"`    // MT20
	Handsets []FileEntry `json:"handsets"` // MT24
	Zones    []FileEntry `json:"zones"`    // HREF
}

// DeleteInput names one ingested file to purge
type DeleteInput struct {
	FileID string `json:"file_id" validate:"required,uuid4"`
}

// DeleteReport summarizes a purge
type DeleteReport struct {
	FileID        string   `json:"file_id"`
	Filename      string   `json:"filename"`
	TablesCleaned []string `json:"tables_cleaned"`
}

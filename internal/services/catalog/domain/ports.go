package domain

import "context"

// QueryPort reads the dossier files log
type QueryPort interface {
	List(ctx context.Context, in ListInput) (Listing, error)
	Get(ctx context.Context, fileID string) (FileEntry, error)
}

// AdminPort purges an ingested file, raw rows and log entry both
type AdminPort interface {
	DeleteFileData(ctx context.Context, in DeleteInput) (DeleteReport, error)
}

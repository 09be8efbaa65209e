package domain

import "context"

// UploaderPort normalizes and stores upload batches
type UploaderPort interface {
	UploadBatch(ctx context.Context, in BatchInput) (BatchReport, error)
}

package out

import (
	"context"

	"healthlog/internal/modules/record/domain"
)

// BlobStorage persists the whole record collection as a single document.
// Load reports ok=false when nothing has been stored yet.
type BlobStorage interface {
	Save(ctx context.Context, payload []byte) error
	Load(ctx context.Context) ([]byte, bool, error)
}

type RecordIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertRecord(ctx context.Context, record domain.Record) error
	DeleteRecord(ctx context.Context, date string) error
	Stats(ctx context.Context) (domain.IndexStats, error)
}

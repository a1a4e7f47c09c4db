package in

import (
	"context"

	"healthlog/internal/modules/record/dto"
)

type Usecase interface {
	AddOrUpdateRecord(ctx context.Context, input dto.RecordInput) (dto.UpsertOutput, error)
	DeleteRecord(ctx context.Context, input dto.DeleteInput) (dto.DeleteOutput, error)
	ListRecords(ctx context.Context) ([]dto.RecordOutput, error)
	GetRecord(ctx context.Context, date string) (dto.RecordOutput, error)
	ClearRecords(ctx context.Context) (dto.ClearOutput, error)
	// ExportDocument returns the collection serialized exactly as it is stored.
	ExportDocument(ctx context.Context) ([]byte, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
}

package in

import (
	"context"

	"healthlog/internal/modules/record/dto"
	recordin "healthlog/internal/modules/record/port/in"
)

type CLIHandler struct {
	usecase recordin.Usecase
}

func NewCLIHandler(usecase recordin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddRecord(ctx context.Context, input dto.RecordInput) (dto.UpsertOutput, error) {
	return h.usecase.AddOrUpdateRecord(ctx, input)
}

func (h CLIHandler) DeleteRecord(ctx context.Context, date string) (dto.DeleteOutput, error) {
	return h.usecase.DeleteRecord(ctx, dto.DeleteInput{Date: date})
}

func (h CLIHandler) DeleteToday(ctx context.Context) (dto.DeleteOutput, error) {
	return h.usecase.DeleteRecord(ctx, dto.DeleteInput{Today: true})
}

func (h CLIHandler) ListRecords(ctx context.Context) ([]dto.RecordOutput, error) {
	return h.usecase.ListRecords(ctx)
}

func (h CLIHandler) GetRecord(ctx context.Context, date string) (dto.RecordOutput, error) {
	return h.usecase.GetRecord(ctx, date)
}

func (h CLIHandler) ClearRecords(ctx context.Context) (dto.ClearOutput, error) {
	return h.usecase.ClearRecords(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

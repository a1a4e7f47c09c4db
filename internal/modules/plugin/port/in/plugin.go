package in

import (
	"context"

	"healthlog/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}

package in

import (
	"context"

	"healthlog/internal/modules/export/dto"
)

type Usecase interface {
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}

package in

import (
	"context"

	"healthlog/internal/modules/analysis/dto"
)

type Usecase interface {
	RunAnalysis(ctx context.Context) (dto.AnalysisOutput, error)
	ActiveFactors(ctx context.Context, date string) (dto.ActiveFactorsOutput, error)
}

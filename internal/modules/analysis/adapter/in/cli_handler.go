package in

import (
	"context"

	"healthlog/internal/modules/analysis/dto"
	analysisin "healthlog/internal/modules/analysis/port/in"
)

type CLIHandler struct {
	usecase analysisin.Usecase
}

func NewCLIHandler(usecase analysisin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Analyze(ctx context.Context) (dto.AnalysisOutput, error) {
	return h.usecase.RunAnalysis(ctx)
}

func (h CLIHandler) ActiveFactors(ctx context.Context, date string) (dto.ActiveFactorsOutput, error) {
	return h.usecase.ActiveFactors(ctx, date)
}

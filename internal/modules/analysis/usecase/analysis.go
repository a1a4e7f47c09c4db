package usecase

import (
	"context"
	"errors"

	"healthlog/internal/modules/analysis/domain"
	"healthlog/internal/modules/analysis/dto"
	analysisin "healthlog/internal/modules/analysis/port/in"
	"healthlog/internal/modules/analysis/service"
	apperrors "healthlog/internal/platform/errors"
)

type Interactor struct {
	svc *service.AnalysisService
}

func NewInteractor(svc *service.AnalysisService) analysisin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RunAnalysis(ctx context.Context) (dto.AnalysisOutput, error) {
	results, count, err := i.svc.Correlate(ctx)
	if errors.Is(err, apperrors.ErrInsufficientData) {
		return dto.AnalysisOutput{Sufficient: false, RecordCount: count, MinRecords: domain.MinEntries}, nil
	}
	if err != nil {
		return dto.AnalysisOutput{}, err
	}
	out := dto.AnalysisOutput{
		Sufficient:   true,
		RecordCount:  count,
		MinRecords:   domain.MinEntries,
		Correlations: make([]dto.CorrelationOutput, 0, len(results)),
	}
	for _, c := range results {
		out.Correlations = append(out.Correlations, dto.CorrelationOutput{
			Symptom:       string(c.Symptom),
			SymptomLabel:  domain.DescribeSymptom(c.Symptom),
			Factor:        string(c.Factor),
			FactorLabel:   domain.DescribeFactor(c.Factor),
			Percentage:    c.Rounded(),
			RawPercentage: c.Percentage,
			Strength:      string(c.Strength),
			WithFactor:    c.WithFactor,
			Total:         c.Total,
		})
	}
	return out, nil
}

func (i *Interactor) ActiveFactors(ctx context.Context, date string) (dto.ActiveFactorsOutput, error) {
	keys, err := i.svc.ActiveFactors(ctx, date)
	if err != nil {
		return dto.ActiveFactorsOutput{}, err
	}
	out := dto.ActiveFactorsOutput{Date: date, Factors: make([]dto.FactorOutput, 0, len(keys))}
	for _, key := range keys {
		out.Factors = append(out.Factors, dto.FactorOutput{Key: string(key), Label: domain.DescribeFactor(key)})
	}
	return out, nil
}

package service

import (
	"context"
	"log/slog"

	"healthlog/internal/modules/analysis/domain"
	analysisout "healthlog/internal/modules/analysis/port/out"
	"healthlog/internal/platform/logging"
)

type AnalysisService struct {
	source analysisout.RecordSource
	logger *slog.Logger
}

func NewAnalysisService(source analysisout.RecordSource, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{source: source, logger: logging.OrDiscard(logger)}
}

// Correlate runs a full pass over the current records. It also returns the
// number of records considered.
func (s *AnalysisService) Correlate(ctx context.Context) ([]domain.Correlation, int, error) {
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return nil, 0, err
	}
	results, err := domain.Analyze(entries)
	if err != nil {
		return nil, len(entries), err
	}
	s.logger.Debug("analysis complete", "records", len(entries), "correlations", len(results))
	return results, len(entries), nil
}

func (s *AnalysisService) ActiveFactors(ctx context.Context, date string) ([]domain.FactorKey, error) {
	entry, err := s.source.Entry(ctx, date)
	if err != nil {
		return nil, err
	}
	return domain.ActiveFactors(entry.Factors), nil
}

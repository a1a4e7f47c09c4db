package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analysisout "healthlog/internal/modules/analysis/adapter/out"
	analysisdto "healthlog/internal/modules/analysis/dto"
	"healthlog/internal/modules/analysis/service"
	"healthlog/internal/modules/analysis/usecase"
	recordout "healthlog/internal/modules/record/adapter/out"
	recorddto "healthlog/internal/modules/record/dto"
	recordin "healthlog/internal/modules/record/port/in"
	recordservice "healthlog/internal/modules/record/service"
	recordusecase "healthlog/internal/modules/record/usecase"
	"healthlog/internal/platform/clock"
	apperrors "healthlog/internal/platform/errors"
	"healthlog/internal/platform/id"
	"healthlog/internal/platform/tx"
)

func newRecords(t *testing.T) (recordin.Usecase, *recordout.MemoryBlobStorage) {
	t.Helper()
	storage := recordout.NewMemoryBlobStorage()
	clk := clock.Fixed{At: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}
	store := recordservice.NewRecordStore(clk, id.UUID{}, storage, nil)
	return recordusecase.NewInteractor(store, tx.NewMutexManager(), clk, nil, nil), storage
}

func TestRunAnalysisEndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records, storage := newRecords(t)
	_, err := records.AddOrUpdateRecord(ctx, recorddto.RecordInput{Date: "2025-01-01", Meals: []string{"breakfast"}, Stress: "yes", Symptoms: []string{"headache"}})
	require.NoError(t, err)
	_, err = records.AddOrUpdateRecord(ctx, recorddto.RecordInput{Date: "2025-01-02", Meals: []string{"breakfast"}, Stress: "no", Symptoms: []string{"headache"}})
	require.NoError(t, err)
	saves := storage.Saves()

	uc := usecase.NewInteractor(service.NewAnalysisService(analysisout.NewRecordSourceAdapter(records), nil))
	out, err := uc.RunAnalysis(ctx)
	require.NoError(t, err)

	assert.True(t, out.Sufficient)
	assert.Equal(t, 2, out.RecordCount)
	require.Len(t, out.Correlations, 2)
	assert.Equal(t, "breakfast", out.Correlations[0].Factor)
	assert.Equal(t, 100.0, out.Correlations[0].Percentage)
	assert.Equal(t, "strong", out.Correlations[0].Strength)
	assert.Equal(t, "Ate breakfast", out.Correlations[0].FactorLabel)
	assert.Equal(t, "Headache", out.Correlations[0].SymptomLabel)
	assert.Equal(t, "stress", out.Correlations[1].Factor)
	assert.Equal(t, 50.0, out.Correlations[1].Percentage)
	assert.Equal(t, "weak", out.Correlations[1].Strength)
	assert.Equal(t, saves, storage.Saves(), "analysis never touches storage")
}

func TestRunAnalysisInsufficientDataIsNotAnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records, _ := newRecords(t)
	uc := usecase.NewInteractor(service.NewAnalysisService(analysisout.NewRecordSourceAdapter(records), nil))

	out, err := uc.RunAnalysis(ctx)
	require.NoError(t, err)
	assert.False(t, out.Sufficient)
	assert.Empty(t, out.Correlations)

	_, err = records.AddOrUpdateRecord(ctx, recorddto.RecordInput{Date: "2025-01-01", Symptoms: []string{"fatigue"}})
	require.NoError(t, err)
	out, err = uc.RunAnalysis(ctx)
	require.NoError(t, err)
	assert.False(t, out.Sufficient)
	assert.Equal(t, 1, out.RecordCount)
	assert.Equal(t, 2, out.MinRecords)
}

func TestActiveFactorsForDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records, _ := newRecords(t)
	_, err := records.AddOrUpdateRecord(ctx, recorddto.RecordInput{Date: "2025-01-01", SleepHours: 7, Exercise: "light"})
	require.NoError(t, err)
	_, err = records.AddOrUpdateRecord(ctx, recorddto.RecordInput{Date: "2025-01-02", SleepHours: 6, WorkCount: "4-5"})
	require.NoError(t, err)
	uc := usecase.NewInteractor(service.NewAnalysisService(analysisout.NewRecordSourceAdapter(records), nil))

	long, err := uc.ActiveFactors(ctx, "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"exercise"}, factorKeys(long.Factors))

	short, err := uc.ActiveFactors(ctx, "2025-01-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"sleepHours", "workCount"}, factorKeys(short.Factors))

	_, err = uc.ActiveFactors(ctx, "2025-01-03")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func factorKeys(factors []analysisdto.FactorOutput) []string {
	out := make([]string, 0, len(factors))
	for _, f := range factors {
		out = append(out, f.Key)
	}
	return out
}

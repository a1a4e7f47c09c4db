package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	recordout "healthlog/internal/modules/record/adapter/out"
	"healthlog/internal/modules/record/domain"
	"healthlog/internal/modules/record/dto"
	"healthlog/internal/modules/record/service"
	"healthlog/internal/modules/record/usecase"
	"healthlog/internal/platform/clock"
	apperrors "healthlog/internal/platform/errors"
	"healthlog/internal/platform/id"
	"healthlog/internal/platform/tx"
)

type failingProjector struct{ calls int }

func (f *failingProjector) Reset(context.Context) error { f.calls++; return errors.New("index down") }
func (f *failingProjector) UpsertRecord(context.Context, domain.Record) error {
	f.calls++
	return errors.New("index down")
}
func (f *failingProjector) DeleteRecord(context.Context, string) error {
	f.calls++
	return errors.New("index down")
}
func (f *failingProjector) Stats(context.Context) (domain.IndexStats, error) {
	return domain.IndexStats{}, errors.New("index down")
}

var fixed = clock.Fixed{At: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}

func TestAddListDeleteReindexAndStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	storage := recordout.NewFileBlobStorage(filepath.Join(dir, "health-records.json"))
	projector, err := recordout.NewSQLiteRecordProjector(filepath.Join(dir, "healthlog.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })
	store := service.NewRecordStore(fixed, id.UUID{}, storage, nil)
	store.Load(ctx)
	uc := usecase.NewInteractor(store, tx.NewMutexManager(), fixed, projector, nil)

	for _, in := range []dto.RecordInput{
		{Date: "2025-03-08", Meals: []string{"breakfast"}, SleepHours: 5, Symptoms: []string{"headache"}},
		{Date: "2025-03-10", Stress: "yes", Symptoms: []string{"headache", "fatigue"}},
		{Date: "2025-03-09"},
	} {
		if _, err := uc.AddOrUpdateRecord(ctx, in); err != nil {
			t.Fatalf("add %s: %v", in.Date, err)
		}
	}

	list, err := uc.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Date != "2025-03-10" || list[2].Date != "2025-03-08" {
		t.Fatalf("unexpected list order: %+v", list)
	}
	if list[2].SleepHours != 5 || len(list[2].Meals) != 1 || list[2].Meals[0] != "breakfast" {
		t.Fatalf("unexpected record output: %+v", list[2])
	}

	stats, err := uc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Records != 3 || stats.FirstDate != "2025-03-08" || stats.LastDate != "2025-03-10" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Symptoms[0].Symptom != "headache" || stats.Symptoms[0].Days != 2 {
		t.Fatalf("unexpected headache count: %+v", stats.Symptoms)
	}

	deleted, err := uc.DeleteRecord(ctx, dto.DeleteInput{Today: true})
	if err != nil {
		t.Fatalf("delete today: %v", err)
	}
	if !deleted.Removed || deleted.Date != "2025-03-10" {
		t.Fatalf("expected today's record removed: %+v", deleted)
	}
	missing, err := uc.DeleteRecord(ctx, dto.DeleteInput{Date: "2024-01-01"})
	if err != nil || missing.Removed {
		t.Fatalf("missing delete should report nothing removed: %+v %v", missing, err)
	}

	reindexed, err := uc.Reindex(ctx)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if reindexed.Indexed != 2 {
		t.Fatalf("expected 2 indexed, got %d", reindexed.Indexed)
	}

	reloaded := service.NewRecordStore(fixed, id.UUID{}, storage, nil)
	if report := reloaded.Load(ctx); report.Records != 2 {
		t.Fatalf("expected 2 records on reload, got %+v", report)
	}

	doc, err := uc.ExportDocument(ctx)
	if err != nil {
		t.Fatalf("export document: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(doc, &raw); err != nil {
		t.Fatalf("document is not a json array: %v", err)
	}
	if len(raw) != 2 || raw[0]["date"] != "2025-03-09" {
		t.Fatalf("unexpected document: %s", doc)
	}

	cleared, err := uc.ClearRecords(ctx)
	if err != nil || cleared.Removed != 2 {
		t.Fatalf("clear: %+v %v", cleared, err)
	}
	if _, err := uc.GetRecord(ctx, "2025-03-09"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found after clear, got %v", err)
	}
}

func TestProjectorFailureDoesNotFailMutation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	projector := &failingProjector{}
	store := service.NewRecordStore(fixed, id.UUID{}, recordout.NewMemoryBlobStorage(), nil)
	uc := usecase.NewInteractor(store, tx.NewMutexManager(), fixed, projector, nil)

	if _, err := uc.AddOrUpdateRecord(ctx, dto.RecordInput{Date: "2025-03-01"}); err != nil {
		t.Fatalf("add should succeed despite index failure: %v", err)
	}
	if out, err := uc.DeleteRecord(ctx, dto.DeleteInput{Date: "2025-03-01"}); err != nil || !out.Removed {
		t.Fatalf("delete should succeed despite index failure: %+v %v", out, err)
	}
	if projector.calls != 2 {
		t.Fatalf("expected projector to be attempted twice, got %d", projector.calls)
	}
	if _, err := uc.Reindex(ctx); err == nil {
		t.Fatalf("explicit reindex should surface index errors")
	}
}

func TestIndexDisabled(t *testing.T) {
	t.Parallel()
	store := service.NewRecordStore(fixed, id.UUID{}, recordout.NewMemoryBlobStorage(), nil)
	uc := usecase.NewInteractor(store, nil, fixed, nil, nil)
	if _, err := uc.Stats(context.Background()); err == nil {
		t.Fatalf("stats without an index should fail")
	}
	if _, err := uc.AddOrUpdateRecord(context.Background(), dto.RecordInput{Date: "2025-03-01"}); err != nil {
		t.Fatalf("add without index: %v", err)
	}
}

func TestAddDefaultsToToday(t *testing.T) {
	t.Parallel()
	store := service.NewRecordStore(fixed, id.UUID{}, recordout.NewMemoryBlobStorage(), nil)
	uc := usecase.NewInteractor(store, nil, fixed, nil, nil)
	out, err := uc.AddOrUpdateRecord(context.Background(), dto.RecordInput{Date: "  ", Symptoms: []string{"other"}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Record.Date != "2025-03-10" {
		t.Fatalf("expected today's date, got %s", out.Record.Date)
	}
}

func TestConcurrentUpsertsAreSerialized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := recordout.NewMemoryBlobStorage()
	store := service.NewRecordStore(fixed, id.UUID{}, storage, nil)
	uc := usecase.NewInteractor(store, tx.NewMutexManager(), fixed, nil, nil)

	dates := []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05", "2025-01-06"}
	var wg sync.WaitGroup
	for round := 0; round < 4; round++ {
		round := round
		for _, date := range dates {
			wg.Add(1)
			go func(date string) {
				defer wg.Done()
				if _, err := uc.AddOrUpdateRecord(ctx, dto.RecordInput{Date: date, SleepHours: round}); err != nil {
					t.Errorf("add %s: %v", date, err)
				}
			}(date)
		}
	}
	wg.Wait()

	list, err := uc.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != len(dates) {
		t.Fatalf("expected one record per date, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Date <= list[i].Date {
			t.Fatalf("list not strictly descending at %d: %s then %s", i, list[i-1].Date, list[i].Date)
		}
	}
	if storage.Saves() != len(dates)*4 {
		t.Fatalf("expected every upsert persisted, got %d", storage.Saves())
	}
}

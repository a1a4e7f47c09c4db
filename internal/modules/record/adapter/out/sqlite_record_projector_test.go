package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	recordout "healthlog/internal/modules/record/adapter/out"
	"healthlog/internal/modules/record/domain"
)

func TestSQLiteRecordProjectorStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	projector, err := recordout.NewSQLiteRecordProjector(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })

	empty, err := projector.Stats(ctx)
	if err != nil {
		t.Fatalf("stats on empty index: %v", err)
	}
	if empty.Records != 0 || empty.FirstDate != "" || empty.SymptomDays[domain.SymptomHeadache] != 0 {
		t.Fatalf("unexpected empty stats: %+v", empty)
	}

	now := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{ID: "a", Date: "2025-01-01", Symptoms: domain.Symptoms{Headache: true}, Timestamp: now},
		{ID: "b", Date: "2025-01-02", Symptoms: domain.Symptoms{Headache: true, Fatigue: true}, Timestamp: now},
		{ID: "c", Date: "2025-01-03", Symptoms: domain.Symptoms{Other: true}, Timestamp: now},
	}
	for _, r := range records {
		if err := projector.UpsertRecord(ctx, r); err != nil {
			t.Fatalf("upsert %s: %v", r.Date, err)
		}
	}
	replaced := records[2]
	replaced.ID = "c2"
	replaced.Symptoms = domain.Symptoms{Fatigue: true}
	if err := projector.UpsertRecord(ctx, replaced); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if err := projector.DeleteRecord(ctx, "2025-01-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stats, err := projector.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Records != 2 || stats.FirstDate != "2025-01-02" || stats.LastDate != "2025-01-03" {
		t.Fatalf("unexpected span: %+v", stats)
	}
	if stats.SymptomDays[domain.SymptomHeadache] != 1 || stats.SymptomDays[domain.SymptomFatigue] != 2 || stats.SymptomDays[domain.SymptomOther] != 0 {
		t.Fatalf("unexpected symptom counts: %+v", stats.SymptomDays)
	}

	if err := projector.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	stats, err = projector.Stats(ctx)
	if err != nil || stats.Records != 0 {
		t.Fatalf("reset should empty index: %+v %v", stats, err)
	}
}

package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"healthlog/internal/bootstrap"
	exportdto "healthlog/internal/modules/export/dto"
	recorddto "healthlog/internal/modules/record/dto"
	"healthlog/internal/platform/config"
)

func TestNewMemoryDriverRunsAnalysis(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Storage.Driver = config.DriverMemory

	app, err := bootstrap.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer func() { _ = app.Close() }()

	ctx := context.Background()
	for _, date := range []string{"2025-01-01", "2025-01-02"} {
		if _, err := app.RecordCLI.AddRecord(ctx, recorddto.RecordInput{Date: date, Stress: "yes", Symptoms: []string{"headache"}}); err != nil {
			t.Fatalf("add %s: %v", date, err)
		}
	}
	out, err := app.AnalysisCLI.Analyze(ctx)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !out.Sufficient || len(out.Correlations) != 1 || out.Correlations[0].Factor != "stress" {
		t.Fatalf("unexpected analysis: %+v", out)
	}
	if _, err := app.RecordCLI.Stats(ctx); err == nil {
		t.Fatalf("expected stats to fail with the index disabled for the memory driver")
	}
}

func TestNewFileDriverPersistsAcrossRestarts(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	app, err := bootstrap.New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := app.RecordCLI.AddRecord(ctx, recorddto.RecordInput{Date: "2025-02-01", Symptoms: []string{"fatigue"}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	stats, err := app.RecordCLI.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Records != 1 {
		t.Fatalf("expected indexed record, got %+v", stats)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".healthlog", "health-records.json")); err != nil {
		t.Fatalf("expected record document on disk: %v", err)
	}

	reopened, err := bootstrap.New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if reopened.LoadReport.Records != 1 {
		t.Fatalf("expected one loaded record, got %+v", reopened.LoadReport)
	}
	list, err := reopened.RecordCLI.ListRecords(ctx)
	if err != nil || len(list) != 1 || list[0].Date != "2025-02-01" {
		t.Fatalf("unexpected records after restart: %+v (%v)", list, err)
	}
}

func TestNewSQLiteDriver(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Storage.Driver = config.DriverSQLite
	ctx := context.Background()

	app, err := bootstrap.New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer func() { _ = app.Close() }()
	if _, err := app.RecordCLI.AddRecord(ctx, recorddto.RecordInput{Date: "2025-02-01"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	doc, err := app.ExportCLI.Export(ctx, exportdto.ExportInput{Format: "json"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if doc.Records != 1 {
		t.Fatalf("unexpected export: %+v", doc)
	}
}

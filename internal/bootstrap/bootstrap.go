package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	analysisinadapter "healthlog/internal/modules/analysis/adapter/in"
	analysisoutadapter "healthlog/internal/modules/analysis/adapter/out"
	analysisservice "healthlog/internal/modules/analysis/service"
	analysisusecase "healthlog/internal/modules/analysis/usecase"
	exportinadapter "healthlog/internal/modules/export/adapter/in"
	exportoutadapter "healthlog/internal/modules/export/adapter/out"
	exportservice "healthlog/internal/modules/export/service"
	exportusecase "healthlog/internal/modules/export/usecase"
	plugininadapter "healthlog/internal/modules/plugin/adapter/in"
	pluginoutadapter "healthlog/internal/modules/plugin/adapter/out"
	pluginservice "healthlog/internal/modules/plugin/service"
	pluginusecase "healthlog/internal/modules/plugin/usecase"
	recordinadapter "healthlog/internal/modules/record/adapter/in"
	recordoutadapter "healthlog/internal/modules/record/adapter/out"
	recordout "healthlog/internal/modules/record/port/out"
	recordservice "healthlog/internal/modules/record/service"
	recordusecase "healthlog/internal/modules/record/usecase"
	"healthlog/internal/platform/clock"
	"healthlog/internal/platform/config"
	"healthlog/internal/platform/id"
	"healthlog/internal/platform/logging"
	"healthlog/internal/platform/tx"
	uiapp "healthlog/internal/ui/app"
)

type App struct {
	DataDir     string
	RecordCLI   recordinadapter.CLIHandler
	AnalysisCLI analysisinadapter.CLIHandler
	ExportCLI   exportinadapter.CLIHandler
	PluginCLI   plugininadapter.CLIHandler
	LoadReport  recordservice.LoadReport

	closers []func() error
}

// New wires every module from cfg and hydrates the record store.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	logger = logging.OrDiscard(logger)
	clk := clock.SystemClock{}
	app := &App{DataDir: cfg.DataDir}

	storage, err := app.openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var projector recordout.RecordIndexProjector
	if cfg.IndexEnabled() {
		p, err := recordoutadapter.NewSQLiteRecordProjector(cfg.DBPath)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("new record projector: %w", err)
		}
		app.closers = append(app.closers, p.Close)
		projector = p
	}

	store := recordservice.NewRecordStore(clk, id.UUID{}, storage, logger.With("module", "record"))
	app.LoadReport = store.Load(ctx)
	logger.Debug("records loaded", "driver", cfg.Storage.Driver, "records", app.LoadReport.Records, "dropped", app.LoadReport.Dropped)
	recordUC := recordusecase.NewInteractor(store, tx.NewMutexManager(), clk, projector, logger.With("module", "record"))

	analysisUC := analysisusecase.NewInteractor(analysisservice.NewAnalysisService(
		analysisoutadapter.NewRecordSourceAdapter(recordUC),
		logger.With("module", "analysis"),
	))

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.PluginsDir),
		pluginoutadapter.NewGRPCHost(),
	))

	exportUC := exportusecase.NewInteractor(exportservice.NewExportService(
		clk,
		exportoutadapter.NewRecordSourceAdapter(recordUC),
		exportoutadapter.NewPluginExporterAdapter(pluginUC),
		logger.With("module", "export"),
	))

	app.RecordCLI = recordinadapter.NewCLIHandler(recordUC)
	app.AnalysisCLI = analysisinadapter.NewCLIHandler(analysisUC)
	app.ExportCLI = exportinadapter.NewCLIHandler(exportUC)
	app.PluginCLI = plugininadapter.NewCLIHandler(pluginUC)
	return app, nil
}

func (a *App) openStorage(ctx context.Context, cfg config.Config) (recordout.BlobStorage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return recordoutadapter.NewMemoryBlobStorage(), nil
	case config.DriverFile:
		return recordoutadapter.NewFileBlobStorage(cfg.Storage.FilePath), nil
	case config.DriverSQLite:
		s, err := recordoutadapter.NewSQLiteBlobStorage(cfg.DBPath, cfg.Storage.Key)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case config.DriverPostgres:
		s, err := recordoutadapter.NewPostgresBlobStorage(cfg.Storage.PostgresDSN, cfg.Storage.Key)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case config.DriverS3:
		s3cfg := cfg.Storage.S3
		s, err := recordoutadapter.NewS3BlobStorage(ctx, recordoutadapter.S3Options{
			Bucket:          s3cfg.Bucket,
			Key:             cfg.Storage.Key,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			PathStyle:       s3cfg.PathStyle,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("open s3 storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// Close releases database handles opened by New.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI blocks until the user quits. Exports land in the data dir.
func RunTUI(app *App) error {
	model := uiapp.NewModel(app.DataDir, app.RecordCLI, app.AnalysisCLI, app.ExportCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

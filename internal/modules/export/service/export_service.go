package service

import (
	"context"
	"fmt"
	"log/slog"

	"healthlog/internal/modules/export/domain"
	exportout "healthlog/internal/modules/export/port/out"
	"healthlog/internal/platform/clock"
	"healthlog/internal/platform/logging"
	"healthlog/internal/platform/markdown"
)

const (
	contentTypeJSON     = "application/json"
	contentTypeMarkdown = "text/markdown"
)

type ExportService struct {
	clock   clock.Clock
	source  exportout.RecordSource
	plugins exportout.PluginExporter
	logger  *slog.Logger
}

// NewExportService accepts a nil plugins exporter; plugin exports then fail.
func NewExportService(clk clock.Clock, source exportout.RecordSource, plugins exportout.PluginExporter, logger *slog.Logger) *ExportService {
	return &ExportService{clock: clk, source: source, plugins: plugins, logger: logging.OrDiscard(logger)}
}

func (s *ExportService) Export(ctx context.Context, req domain.Request) (domain.Artifact, error) {
	if err := req.Validate(); err != nil {
		return domain.Artifact{}, err
	}
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return domain.Artifact{}, err
	}
	today := clock.Today(s.clock)

	var artifact domain.Artifact
	switch req.Format {
	case domain.FormatJSON:
		document, err := s.source.Document(ctx)
		if err != nil {
			return domain.Artifact{}, err
		}
		artifact = domain.Artifact{FileName: domain.FileName(today, "json"), ContentType: contentTypeJSON, Payload: document}
	case domain.FormatMarkdown:
		rendered, err := markdown.Render(domain.NewJournalMeta(today, entries), domain.JournalBody(entries))
		if err != nil {
			return domain.Artifact{}, err
		}
		artifact = domain.Artifact{FileName: domain.FileName(today, "md"), ContentType: contentTypeMarkdown, Payload: []byte(rendered)}
	case domain.FormatPlugin:
		if s.plugins == nil {
			return domain.Artifact{}, fmt.Errorf("plugin exports are not configured")
		}
		document, err := s.source.Document(ctx)
		if err != nil {
			return domain.Artifact{}, err
		}
		out, err := s.plugins.Export(ctx, req.Plugin, document, req.Options)
		if err != nil {
			return domain.Artifact{}, fmt.Errorf("export via plugin %s: %w", req.Plugin, err)
		}
		artifact = domain.Artifact{FileName: domain.FileName(today, out.FileExtension), ContentType: out.ContentType, Payload: out.Payload}
	}
	artifact.Records = len(entries)
	s.logger.Debug("export rendered", "format", req.Format, "file", artifact.FileName, "records", artifact.Records)
	return artifact, nil
}

package out

import (
	"context"

	"healthlog/internal/modules/export/domain"
)

type RecordSource interface {
	// Document returns the stored collection bytes, unmodified.
	Document(ctx context.Context) ([]byte, error)
	Entries(ctx context.Context) ([]domain.Entry, error)
}

type PluginExporter interface {
	Export(ctx context.Context, plugin string, document []byte, options map[string]string) (domain.PluginArtifact, error)
}

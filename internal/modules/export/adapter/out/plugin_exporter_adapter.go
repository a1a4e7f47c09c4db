package out

import (
	"context"

	"healthlog/internal/modules/export/domain"
	exportout "healthlog/internal/modules/export/port/out"
	plugindto "healthlog/internal/modules/plugin/dto"
	pluginin "healthlog/internal/modules/plugin/port/in"
)

type PluginExporterAdapter struct {
	plugins pluginin.Usecase
}

func NewPluginExporterAdapter(plugins pluginin.Usecase) exportout.PluginExporter {
	return &PluginExporterAdapter{plugins: plugins}
}

func (a *PluginExporterAdapter) Export(ctx context.Context, plugin string, document []byte, options map[string]string) (domain.PluginArtifact, error) {
	out, err := a.plugins.Export(ctx, plugindto.ExportInput{PluginName: plugin, DocumentJSON: document, Options: options})
	if err != nil {
		return domain.PluginArtifact{}, err
	}
	return domain.PluginArtifact{FileExtension: out.FileExtension, ContentType: out.ContentType, Payload: out.Payload}, nil
}

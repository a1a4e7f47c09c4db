package usecase

import (
	"context"

	"healthlog/internal/modules/export/domain"
	"healthlog/internal/modules/export/dto"
	exportin "healthlog/internal/modules/export/port/in"
	"healthlog/internal/modules/export/service"
)

type Interactor struct {
	svc *service.ExportService
}

func NewInteractor(svc *service.ExportService) exportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	format, err := domain.ParseFormat(input.Format)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	if input.PluginName != "" {
		format = domain.FormatPlugin
	}
	artifact, err := i.svc.Export(ctx, domain.Request{Format: format, Plugin: input.PluginName, Options: input.Options})
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{
		FileName:    artifact.FileName,
		ContentType: artifact.ContentType,
		Payload:     artifact.Payload,
		Records:     artifact.Records,
	}, nil
}

package usecase

import (
	"context"

	"healthlog/internal/modules/plugin/dto"
	pluginin "healthlog/internal/modules/plugin/port/in"
	"healthlog/internal/modules/plugin/service"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	return i.svc.Export(ctx, input)
}

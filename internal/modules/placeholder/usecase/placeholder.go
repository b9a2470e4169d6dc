package usecase

import (
	"context"

	"questbook/internal/modules/placeholder/dto"
	placeholderin "questbook/internal/modules/placeholder/port/in"
	"questbook/internal/modules/placeholder/service"
)

type Interactor struct {
	svc *service.PlaceholderService
}

func NewInteractor(svc *service.PlaceholderService) placeholderin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Expand(ctx context.Context, input dto.ExpandInput) (dto.ExpandOutput, error) {
	return i.svc.Expand(ctx, input)
}

package in

import (
	"context"

	"questbook/internal/modules/placeholder/dto"
	placeholderin "questbook/internal/modules/placeholder/port/in"
)

type CLIHandler struct {
	usecase placeholderin.Usecase
}

func NewCLIHandler(usecase placeholderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Expand(ctx context.Context, input dto.ExpandInput) (dto.ExpandOutput, error) {
	return h.usecase.Expand(ctx, input)
}

package in

import (
	"context"

	"questbook/internal/modules/placeholder/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Expand(ctx context.Context, input dto.ExpandInput) (dto.ExpandOutput, error)
}

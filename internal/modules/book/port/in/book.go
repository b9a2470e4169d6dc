package in

import (
	"context"

	"questbook/internal/modules/book/dto"
)

type Usecase interface {
	Open(ctx context.Context, user string) (dto.ViewOutput, error)
	Click(ctx context.Context, input dto.ClickInput) (dto.ClickOutput, error)
	CloseAll(ctx context.Context) error
}

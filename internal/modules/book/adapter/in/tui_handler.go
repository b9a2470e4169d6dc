package in

import (
	"context"

	"questbook/internal/modules/book/dto"
	bookin "questbook/internal/modules/book/port/in"
)

type TUIHandler struct {
	usecase bookin.Usecase
}

func NewTUIHandler(usecase bookin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Open(ctx context.Context, user string) (dto.ViewOutput, error) {
	return h.usecase.Open(ctx, user)
}

func (h TUIHandler) Click(ctx context.Context, input dto.ClickInput) (dto.ClickOutput, error) {
	return h.usecase.Click(ctx, input)
}

func (h TUIHandler) CloseAll(ctx context.Context) error {
	return h.usecase.CloseAll(ctx)
}

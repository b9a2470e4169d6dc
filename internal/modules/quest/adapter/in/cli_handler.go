package in

import (
	"context"

	"questbook/internal/modules/quest/dto"
	questin "questbook/internal/modules/quest/port/in"
)

type CLIHandler struct {
	usecase questin.Usecase
}

func NewCLIHandler(usecase questin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, name, author, icon string) (dto.QuestOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{Name: name, Author: author, Icon: icon})
}

func (h CLIHandler) Delete(ctx context.Context, id string) (bool, error) {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) UpdateField(ctx context.Context, id, field, value string) (dto.QuestOutput, error) {
	return h.usecase.UpdateField(ctx, dto.UpdateFieldInput{ID: id, Field: field, Value: value})
}

func (h CLIHandler) SetIcon(ctx context.Context, id, icon string) (dto.QuestOutput, error) {
	return h.usecase.SetIcon(ctx, id, icon)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.QuestOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.QuestOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

package in

import (
	"context"

	"questbook/internal/modules/quest/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.QuestOutput, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpdateField(ctx context.Context, input dto.UpdateFieldInput) (dto.QuestOutput, error)
	SetIcon(ctx context.Context, id, icon string) (dto.QuestOutput, error)
	ReplacePages(ctx context.Context, id string, pages []string) (dto.QuestOutput, error)
	List(ctx context.Context) ([]dto.QuestOutput, error)
	Get(ctx context.Context, id string) (dto.QuestOutput, error)
	Reindex(ctx context.Context) error
}

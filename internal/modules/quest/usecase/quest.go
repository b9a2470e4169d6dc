package usecase

import (
	"context"

	"questbook/internal/modules/quest/domain"
	"questbook/internal/modules/quest/dto"
	questin "questbook/internal/modules/quest/port/in"
	"questbook/internal/modules/quest/service"
)

type Interactor struct {
	svc *service.QuestService
}

func NewInteractor(svc *service.QuestService) questin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.QuestOutput, error) {
	quest, err := i.svc.Create(ctx, input.Name, input.Author, input.Icon)
	if err != nil {
		return dto.QuestOutput{}, err
	}
	return toOutput(quest), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) (bool, error) {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) UpdateField(ctx context.Context, input dto.UpdateFieldInput) (dto.QuestOutput, error) {
	field, err := domain.ParseField(input.Field)
	if err != nil {
		return dto.QuestOutput{}, err
	}
	quest, err := i.svc.UpdateField(ctx, input.ID, field, input.Value)
	if err != nil {
		return dto.QuestOutput{}, err
	}
	return toOutput(quest), nil
}

func (i *Interactor) SetIcon(ctx context.Context, id, icon string) (dto.QuestOutput, error) {
	quest, err := i.svc.SetIcon(ctx, id, icon)
	if err != nil {
		return dto.QuestOutput{}, err
	}
	return toOutput(quest), nil
}

func (i *Interactor) ReplacePages(ctx context.Context, id string, pages []string) (dto.QuestOutput, error) {
	quest, err := i.svc.ReplacePages(ctx, id, pages)
	if err != nil {
		return dto.QuestOutput{}, err
	}
	return toOutput(quest), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.QuestOutput, error) {
	quests := i.svc.List(ctx)
	out := make([]dto.QuestOutput, 0, len(quests))
	for _, q := range quests {
		out = append(out, toOutput(q))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.QuestOutput, error) {
	quest, err := i.svc.Find(ctx, id)
	if err != nil {
		return dto.QuestOutput{}, err
	}
	return toOutput(quest), nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toOutput(q *domain.Quest) dto.QuestOutput {
	pages := make([]string, len(q.Pages))
	copy(pages, q.Pages)
	return dto.QuestOutput{
		ID:          q.ID,
		DisplayName: q.DisplayName,
		Author:      q.Author,
		Difficulty:  q.Difficulty,
		Description: q.Description,
		Icon:        q.Icon,
		Pages:       pages,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

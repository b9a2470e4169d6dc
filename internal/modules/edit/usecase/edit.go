package usecase

import (
	"context"

	"questbook/internal/modules/edit/domain"
	"questbook/internal/modules/edit/dto"
	editin "questbook/internal/modules/edit/port/in"
	"questbook/internal/modules/edit/service"
)

type Interactor struct {
	binder *service.Binder
}

func NewInteractor(binder *service.Binder) editin.Usecase {
	return &Interactor{binder: binder}
}

func (i *Interactor) Issue(ctx context.Context, input dto.IssueInput) (dto.DraftOutput, error) {
	draft, err := i.binder.Issue(ctx, input.User, input.QuestID)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	return dto.DraftOutput{
		ArtifactID: draft.ArtifactID,
		QuestID:    draft.QuestID,
		Label:      draft.Label,
		Pages:      draft.Pages,
	}, nil
}

func (i *Interactor) Saved(ctx context.Context, input dto.SavedInput) (dto.SavedOutput, error) {
	pages := make([]domain.PageContent, 0, len(input.Pages))
	for _, page := range input.Pages {
		kind := domain.PageKind(page.Kind)
		if kind == "" {
			kind = domain.PageText
		}
		pages = append(pages, domain.PageContent{Kind: kind, Text: page.Text})
	}
	handled, err := i.binder.Saved(ctx, domain.SavedEvent{
		User:          input.User,
		OldArtifactID: input.OldArtifactID,
		NewArtifactID: input.NewArtifactID,
		Pages:         pages,
		Signing:       input.Signing,
	})
	return dto.SavedOutput{Handled: handled}, err
}

func (i *Interactor) DropAll(_ context.Context) error {
	i.binder.DropAll()
	return nil
}

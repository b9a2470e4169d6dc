package usecase

import (
	"context"

	"questbook/internal/modules/book/domain"
	"questbook/internal/modules/book/dto"
	bookin "questbook/internal/modules/book/port/in"
	"questbook/internal/modules/book/service"
	questdomain "questbook/internal/modules/quest/domain"
)

type Interactor struct {
	tracker *service.ViewTracker
}

func NewInteractor(tracker *service.ViewTracker) bookin.Usecase {
	return &Interactor{tracker: tracker}
}

func (i *Interactor) Open(ctx context.Context, user string) (dto.ViewOutput, error) {
	view, err := i.tracker.Open(ctx, user)
	if err != nil {
		return dto.ViewOutput{}, err
	}
	return toViewOutput(view), nil
}

func (i *Interactor) Click(ctx context.Context, input dto.ClickInput) (dto.ClickOutput, error) {
	clicked := questdomain.Artifact{Icon: input.Icon, Label: input.Label, Lore: input.Lore}
	entry, ok, err := i.tracker.ResolveClick(ctx, input.User, input.ViewID, clicked)
	if err != nil || !ok {
		return dto.ClickOutput{}, err
	}
	book, err := i.tracker.Read(ctx, input.User, entry)
	if err != nil {
		return dto.ClickOutput{}, err
	}
	return dto.ClickOutput{
		Opened:  true,
		QuestID: entry.ID,
		Book:    dto.BookOutput{Title: book.Title, Author: book.Author, Pages: book.Pages},
	}, nil
}

func (i *Interactor) CloseAll(ctx context.Context) error {
	i.tracker.CloseAll(ctx)
	return nil
}

func toViewOutput(view domain.View) dto.ViewOutput {
	out := dto.ViewOutput{ID: view.ID, Title: view.Title, Slots: make([]dto.SlotOutput, 0, len(view.Slots))}
	for index, slot := range view.Slots {
		out.Slots = append(out.Slots, dto.SlotOutput{
			Index:   index,
			Kind:    slotKindName(slot.Kind),
			QuestID: slot.QuestID,
			Icon:    slot.Artifact.Icon,
			Label:   slot.Artifact.Label,
			Lore:    slot.Artifact.Lore,
		})
	}
	return out
}

func slotKindName(kind domain.SlotKind) string {
	switch kind {
	case domain.SlotBorder:
		return "border"
	case domain.SlotHeader:
		return "header"
	case domain.SlotQuest:
		return "quest"
	default:
		return "empty"
	}
}

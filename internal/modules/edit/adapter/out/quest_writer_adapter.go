package out

import (
	"context"

	"questbook/internal/modules/edit/domain"
	editout "questbook/internal/modules/edit/port/out"
	questin "questbook/internal/modules/quest/port/in"
)

// QuestWriterAdapter bridges the binder to the quest module.
type QuestWriterAdapter struct {
	quests questin.Usecase
}

func NewQuestWriterAdapter(quests questin.Usecase) editout.QuestWriter {
	return &QuestWriterAdapter{quests: quests}
}

func (a *QuestWriterAdapter) Find(ctx context.Context, id string) (domain.Record, error) {
	quest, err := a.quests.Get(ctx, id)
	if err != nil {
		return domain.Record{}, err
	}
	return domain.Record{ID: quest.ID, DisplayName: quest.DisplayName, Pages: quest.Pages}, nil
}

func (a *QuestWriterAdapter) ReplacePages(ctx context.Context, id string, pages []string) error {
	_, err := a.quests.ReplacePages(ctx, id, pages)
	return err
}

package out

import (
	"context"

	"questbook/internal/modules/book/domain"
	bookout "questbook/internal/modules/book/port/out"
	questdomain "questbook/internal/modules/quest/domain"
	questin "questbook/internal/modules/quest/port/in"
)

// QuestCatalogAdapter projects the quest module's records into browse
// entries, deriving the display artifact for each.
type QuestCatalogAdapter struct {
	quests questin.Usecase
}

func NewQuestCatalogAdapter(quests questin.Usecase) bookout.Catalog {
	return &QuestCatalogAdapter{quests: quests}
}

func (a *QuestCatalogAdapter) List(ctx context.Context) ([]domain.Entry, error) {
	quests, err := a.quests.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(quests))
	for _, q := range quests {
		record := questdomain.Quest{
			ID:          q.ID,
			DisplayName: q.DisplayName,
			Author:      q.Author,
			Difficulty:  q.Difficulty,
			Description: q.Description,
			Icon:        q.Icon,
			Pages:       q.Pages,
		}
		entries = append(entries, domain.Entry{
			ID:          q.ID,
			DisplayName: q.DisplayName,
			Author:      q.Author,
			Pages:       q.Pages,
			Artifact:    record.Artifact(),
		})
	}
	return entries, nil
}

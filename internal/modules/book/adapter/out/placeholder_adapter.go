package out

import (
	"context"

	bookout "questbook/internal/modules/book/port/out"
	placeholderdto "questbook/internal/modules/placeholder/dto"
	placeholderin "questbook/internal/modules/placeholder/port/in"
)

// PlaceholderAdapter lets the book module run quest pages through the
// placeholder plugins without importing anything past their inbound port.
type PlaceholderAdapter struct {
	placeholders placeholderin.Usecase
}

func NewPlaceholderAdapter(placeholders placeholderin.Usecase) bookout.Expander {
	return &PlaceholderAdapter{placeholders: placeholders}
}

func (a *PlaceholderAdapter) Expand(ctx context.Context, viewer, questID string, pages []string) ([]string, error) {
	out, err := a.placeholders.Expand(ctx, placeholderdto.ExpandInput{Viewer: viewer, QuestID: questID, Pages: pages})
	if err != nil {
		return nil, err
	}
	return out.Pages, nil
}

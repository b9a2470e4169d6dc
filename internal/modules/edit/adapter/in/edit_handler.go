package in

import (
	"context"

	"questbook/internal/modules/edit/dto"
	editin "questbook/internal/modules/edit/port/in"
)

// EditHandler is the thin boundary the command surface and the editing UI
// drive edit sessions through.
type EditHandler struct {
	usecase editin.Usecase
}

func NewEditHandler(usecase editin.Usecase) EditHandler {
	return EditHandler{usecase: usecase}
}

func (h EditHandler) Issue(ctx context.Context, user, questID string) (dto.DraftOutput, error) {
	return h.usecase.Issue(ctx, dto.IssueInput{User: user, QuestID: questID})
}

func (h EditHandler) Saved(ctx context.Context, input dto.SavedInput) (dto.SavedOutput, error) {
	return h.usecase.Saved(ctx, input)
}

func (h EditHandler) DropAll(ctx context.Context) error {
	return h.usecase.DropAll(ctx)
}

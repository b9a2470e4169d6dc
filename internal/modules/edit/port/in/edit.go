package in

import (
	"context"

	"questbook/internal/modules/edit/dto"
)

type Usecase interface {
	Issue(ctx context.Context, input dto.IssueInput) (dto.DraftOutput, error)
	Saved(ctx context.Context, input dto.SavedInput) (dto.SavedOutput, error)
	DropAll(ctx context.Context) error
}

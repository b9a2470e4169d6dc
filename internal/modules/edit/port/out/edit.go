package out

import (
	"context"

	"questbook/internal/modules/edit/domain"
)

// QuestWriter resolves and commits against the quest records.
type QuestWriter interface {
	Find(ctx context.Context, id string) (domain.Record, error)
	ReplacePages(ctx context.Context, id string, pages []string) error
}

// Possession is the host-side inventory the draft artifact lives in.
type Possession interface {
	Grant(ctx context.Context, user string, draft domain.Draft) error
	Remove(ctx context.Context, user, artifactID string) error
}

package out

import (
	"context"

	"questbook/internal/modules/quest/domain"
)

// RecordStore persists the full record list in one durable document.
type RecordStore interface {
	Load(ctx context.Context) ([]*domain.Quest, error)
	Save(ctx context.Context, quests []*domain.Quest) error
}

// IndexProjector maintains the derived query index of the record list.
type IndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, quest domain.Quest) error
	Delete(ctx context.Context, id string) error
}

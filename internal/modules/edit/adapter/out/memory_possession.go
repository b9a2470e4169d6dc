package out

import (
	"context"
	"fmt"
	"sync"

	"questbook/internal/modules/edit/domain"
	editout "questbook/internal/modules/edit/port/out"
	apperrors "questbook/internal/platform/errors"
)

// DefaultCapacity mirrors a player inventory: 36 artifact slots per user.
const DefaultCapacity = 36

// MemoryPossession is the in-process inventory host holding issued drafts.
type MemoryPossession struct {
	mu       sync.Mutex
	capacity int
	held     map[string][]domain.Draft
}

func NewMemoryPossession(capacity int) *MemoryPossession {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryPossession{capacity: capacity, held: make(map[string][]domain.Draft)}
}

var _ editout.Possession = (*MemoryPossession)(nil)

func (p *MemoryPossession) Grant(_ context.Context, user string, draft domain.Draft) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.held[user]) >= p.capacity {
		return fmt.Errorf("inventory of %s is full: %w", user, apperrors.ErrNoCapacity)
	}
	p.held[user] = append(p.held[user], draft)
	return nil
}

func (p *MemoryPossession) Remove(_ context.Context, user, artifactID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	drafts := p.held[user]
	filtered := drafts[:0]
	for _, d := range drafts {
		if d.ArtifactID != artifactID {
			filtered = append(filtered, d)
		}
	}
	p.held[user] = filtered
	return nil
}

// Rekey updates the identity of a held draft after the editing surface saves
// it, keeping possession aligned with the binder's session map.
func (p *MemoryPossession) Rekey(user, oldArtifactID, newArtifactID string, pages []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	drafts := p.held[user]
	for i := range drafts {
		if drafts[i].ArtifactID == oldArtifactID {
			drafts[i].ArtifactID = newArtifactID
			drafts[i].Pages = pages
			return
		}
	}
}

// Held lists the drafts currently in a user's possession.
func (p *MemoryPossession) Held(user string) []domain.Draft {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Draft, len(p.held[user]))
	copy(out, p.held[user])
	return out
}

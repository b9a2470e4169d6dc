package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"questbook/internal/modules/edit/domain"
	editout "questbook/internal/modules/edit/port/out"
	apperrors "questbook/internal/platform/errors"
	"questbook/internal/platform/id"
)

// Binder correlates in-flight draft artifacts with the quest records they
// commit into. Sessions are keyed by artifact identity, not user: the host
// only supplies "old identity, new identity" at save time, and a user may
// hold any number of outstanding drafts.
type Binder struct {
	mu       sync.Mutex
	sessions map[string]string // artifact identity -> quest id

	ids        id.Generator
	quests     editout.QuestWriter
	possession editout.Possession
	log        hclog.Logger
}

func NewBinder(ids id.Generator, quests editout.QuestWriter, possession editout.Possession, log hclog.Logger) *Binder {
	return &Binder{
		sessions:   make(map[string]string),
		ids:        ids,
		quests:     quests,
		possession: possession,
		log:        log,
	}
}

// Issue builds a writable draft preloaded with the record's pages and places
// it into the user's possession. When the inventory cannot accept it, no
// session is registered and the artifact is discarded.
func (b *Binder) Issue(ctx context.Context, user, questID string) (domain.Draft, error) {
	record, err := b.quests.Find(ctx, questID)
	if err != nil {
		return domain.Draft{}, err
	}

	pages := make([]string, len(record.Pages))
	copy(pages, record.Pages)
	draft := domain.Draft{
		ArtifactID: b.ids.New("draft"),
		QuestID:    record.ID,
		Label:      record.DisplayName,
		Pages:      pages,
	}

	if err := b.possession.Grant(ctx, user, draft); err != nil {
		return domain.Draft{}, fmt.Errorf("grant draft for %q: %w", record.ID, err)
	}

	b.mu.Lock()
	b.sessions[draft.ArtifactID] = record.ID
	b.mu.Unlock()
	b.log.Debug("edit session opened", "quest", record.ID, "artifact", draft.ArtifactID, "user", user)
	return draft, nil
}

// Saved handles the host's draft-saved or signed event. An unknown old
// artifact identity is not the binder's event and reports handled=false.
//
// A plain save commits the pages, persists, and re-keys the session under the
// new artifact identity. A signing save commits, ends the session, and pulls
// the finalized artifact out of the user's possession.
func (b *Binder) Saved(ctx context.Context, event domain.SavedEvent) (bool, error) {
	b.mu.Lock()
	questID, ok := b.sessions[event.OldArtifactID]
	b.mu.Unlock()
	if !ok {
		return false, nil
	}

	pages := domain.TextPages(event.Pages)
	if err := b.quests.ReplacePages(ctx, questID, pages); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The record was deleted underneath the session; the session is
			// unrecoverable either way.
			b.mu.Lock()
			delete(b.sessions, event.OldArtifactID)
			b.mu.Unlock()
			return true, err
		}
		// The durable write failed. The old binding stays so the editor can
		// surface the failure without orphaning the draft.
		return true, err
	}

	b.mu.Lock()
	delete(b.sessions, event.OldArtifactID)
	if !event.Signing {
		b.sessions[event.NewArtifactID] = questID
	}
	b.mu.Unlock()

	if event.Signing {
		if err := b.possession.Remove(ctx, event.User, event.NewArtifactID); err != nil {
			b.log.Warn("failed to remove finalized draft from possession", "artifact", event.NewArtifactID, "user", event.User, "error", err)
		}
		b.log.Debug("edit session finalized", "quest", questID, "artifact", event.OldArtifactID)
		return true, nil
	}

	b.log.Debug("edit session rebound", "quest", questID, "old", event.OldArtifactID, "new", event.NewArtifactID)
	return true, nil
}

// Active reports the number of outstanding edit sessions.
func (b *Binder) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

// DropAll discards every in-flight session. Edits that were never finalized
// are lost on shutdown; there is no draft recovery.
func (b *Binder) DropAll() {
	b.mu.Lock()
	dropped := len(b.sessions)
	b.sessions = make(map[string]string)
	b.mu.Unlock()
	if dropped > 0 {
		b.log.Info("dropped in-flight edit sessions", "count", dropped)
	}
}

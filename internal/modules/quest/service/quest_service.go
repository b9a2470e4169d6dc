package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"questbook/internal/modules/quest/domain"
	questout "questbook/internal/modules/quest/port/out"
	"questbook/internal/platform/clock"
	apperrors "questbook/internal/platform/errors"
	"questbook/internal/platform/slug"
	"questbook/internal/platform/tx"
)

// QuestService owns the in-memory record list. Every mutation rewrites the
// whole durable document and reprojects the index, so the design is sized for
// hundreds of records, not millions.
type QuestService struct {
	mu     sync.Mutex
	quests []*domain.Quest

	clk   clock.Clock
	store questout.RecordStore
	index questout.IndexProjector
	txm   tx.Manager
	log   hclog.Logger
}

// NewQuestService loads the record list from the store. An undecodable store
// is logged and replaced with an empty working set; a corrupt file must not
// keep the system from coming up.
func NewQuestService(clk clock.Clock, store questout.RecordStore, index questout.IndexProjector, txm tx.Manager, log hclog.Logger) *QuestService {
	s := &QuestService{clk: clk, store: store, index: index, txm: txm, log: log}
	quests, err := store.Load(context.Background())
	if err != nil {
		s.log.Error("failed to load quest records, starting with an empty list", "error", err)
		quests = nil
	}
	for _, q := range quests {
		q.Normalize()
	}
	s.quests = quests
	return s
}

// List returns the current working set. Callers receive the live record
// pointers; the backing slice is copied so registrations stay race-free.
func (s *QuestService) List(_ context.Context) []*domain.Quest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Quest, len(s.quests))
	copy(out, s.quests)
	return out
}

// Find resolves a record by id, case-insensitively.
func (s *QuestService) Find(_ context.Context, id string) (*domain.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q := s.findLocked(id); q != nil {
		return q, nil
	}
	return nil, fmt.Errorf("quest %q: %w", id, apperrors.ErrNotFound)
}

func (s *QuestService) findLocked(id string) *domain.Quest {
	for _, q := range s.quests {
		if strings.EqualFold(q.ID, id) {
			return q
		}
	}
	return nil
}

// Create registers a new quest under the normalized form of name. The stored
// id must be unique case-insensitively across live records.
func (s *QuestService) Create(ctx context.Context, name, author, icon string) (*domain.Quest, error) {
	id := slug.Make(name)
	if id == "" {
		return nil, fmt.Errorf("quest name is required: %w", apperrors.ErrInvalidInput)
	}
	if len([]rune(id)) > domain.MaxIDLength {
		return nil, fmt.Errorf("quest name must be at most %d characters: %w", domain.MaxIDLength, apperrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.findLocked(id); existing != nil {
		return nil, fmt.Errorf("quest %q: %w", existing.ID, apperrors.ErrDuplicateID)
	}

	quest := domain.New(id, strings.TrimSpace(name), author, s.clk.Now())
	if icon != "" {
		quest.Icon = icon
	}
	if err := quest.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}

	s.quests = append(s.quests, quest)
	if err := s.persistLocked(ctx, quest); err != nil {
		return nil, err
	}
	return quest, nil
}

// Delete removes a record by id. A missing id is a no-op, not an error; the
// returned bool reports whether anything was removed.
func (s *QuestService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quest := s.findLocked(id)
	if quest == nil {
		return false, nil
	}
	filtered := s.quests[:0]
	for _, q := range s.quests {
		if q != quest {
			filtered = append(filtered, q)
		}
	}
	s.quests = filtered

	err := s.txm.Within(ctx, func(ctx context.Context) error {
		if err := s.store.Save(ctx, s.quests); err != nil {
			return apperrors.Persistence("quest records", err)
		}
		if s.index != nil {
			if err := s.index.Delete(ctx, quest.ID); err != nil {
				s.log.Warn("failed to drop quest from index", "id", quest.ID, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateField mutates one text field in place and persists the list.
func (s *QuestService) UpdateField(ctx context.Context, id string, field domain.Field, value string) (*domain.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quest := s.findLocked(id)
	if quest == nil {
		return nil, fmt.Errorf("quest %q: %w", id, apperrors.ErrNotFound)
	}
	quest.Set(field, value)
	quest.UpdatedAt = s.clk.Now()
	if err := s.persistLocked(ctx, quest); err != nil {
		return nil, err
	}
	return quest, nil
}

// SetIcon replaces the stored cosmetic token, the one display field that is
// not derived from text.
func (s *QuestService) SetIcon(ctx context.Context, id, icon string) (*domain.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quest := s.findLocked(id)
	if quest == nil {
		return nil, fmt.Errorf("quest %q: %w", id, apperrors.ErrNotFound)
	}
	if icon == "" {
		icon = domain.DefaultIcon
	}
	quest.Icon = icon
	quest.UpdatedAt = s.clk.Now()
	if err := s.persistLocked(ctx, quest); err != nil {
		return nil, err
	}
	return quest, nil
}

// ReplacePages swaps the authored content wholesale. This is the edit-session
// commit path; a failed persist surfaces loudly because the in-memory record
// has already changed.
func (s *QuestService) ReplacePages(ctx context.Context, id string, pages []string) (*domain.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quest := s.findLocked(id)
	if quest == nil {
		return nil, fmt.Errorf("quest %q: %w", id, apperrors.ErrNotFound)
	}
	if pages == nil {
		pages = []string{}
	}
	quest.Pages = pages
	quest.UpdatedAt = s.clk.Now()
	if err := s.persistLocked(ctx, quest); err != nil {
		return nil, err
	}
	return quest, nil
}

// Save persists the current in-memory state without a preceding list
// mutation, for callers that edited a record in place.
func (s *QuestService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, s.quests); err != nil {
		return apperrors.Persistence("quest records", err)
	}
	return nil
}

// Reindex rebuilds the derived query index from the record list.
func (s *QuestService) Reindex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.index.Reset(ctx); err != nil {
		return err
	}
	for _, q := range s.quests {
		if err := s.index.Upsert(ctx, *q); err != nil {
			return err
		}
	}
	return nil
}

func (s *QuestService) persistLocked(ctx context.Context, changed *domain.Quest) error {
	return s.txm.Within(ctx, func(ctx context.Context) error {
		if err := s.store.Save(ctx, s.quests); err != nil {
			return apperrors.Persistence("quest records", err)
		}
		if s.index != nil && changed != nil {
			if err := s.index.Upsert(ctx, *changed); err != nil {
				s.log.Warn("failed to reproject quest", "id", changed.ID, "error", err)
			}
		}
		return nil
	})
}

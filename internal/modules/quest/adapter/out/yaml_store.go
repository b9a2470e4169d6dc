package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"questbook/internal/modules/quest/domain"
	questout "questbook/internal/modules/quest/port/out"
)

// YAMLRecordStore keeps every quest in one quests.yml document. Loads read
// the whole file; saves overwrite it wholesale.
type YAMLRecordStore struct {
	path string
}

func NewYAMLRecordStore(path string) questout.RecordStore {
	return &YAMLRecordStore{path: path}
}

type storedQuest struct {
	ID          string    `yaml:"id"`
	DisplayName string    `yaml:"display_name"`
	Author      string    `yaml:"author"`
	Difficulty  string    `yaml:"difficulty"`
	Description string    `yaml:"description,omitempty"`
	Icon        string    `yaml:"icon"`
	Pages       []string  `yaml:"pages"`
	CreatedAt   time.Time `yaml:"created_at,omitempty"`
	UpdatedAt   time.Time `yaml:"updated_at,omitempty"`
}

type storeDocument struct {
	Quests []storedQuest `yaml:"quests"`
}

func (s *YAMLRecordStore) Load(_ context.Context) ([]*domain.Quest, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("create quest store dir: %w", err)
	}
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read quest store: %w", err)
	}
	doc := storeDocument{}
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode quest store: %w", err)
	}
	quests := make([]*domain.Quest, 0, len(doc.Quests))
	for _, stored := range doc.Quests {
		quests = append(quests, &domain.Quest{
			ID:          stored.ID,
			DisplayName: stored.DisplayName,
			Author:      stored.Author,
			Difficulty:  stored.Difficulty,
			Description: stored.Description,
			Icon:        stored.Icon,
			Pages:       stored.Pages,
			CreatedAt:   stored.CreatedAt,
			UpdatedAt:   stored.UpdatedAt,
		})
	}
	return quests, nil
}

func (s *YAMLRecordStore) Save(_ context.Context, quests []*domain.Quest) error {
	doc := storeDocument{Quests: make([]storedQuest, 0, len(quests))}
	for _, q := range quests {
		doc.Quests = append(doc.Quests, storedQuest{
			ID:          q.ID,
			DisplayName: q.DisplayName,
			Author:      q.Author,
			Difficulty:  q.Difficulty,
			Description: q.Description,
			Icon:        q.Icon,
			Pages:       q.Pages,
			CreatedAt:   q.CreatedAt,
			UpdatedAt:   q.UpdatedAt,
		})
	}
	payload, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode quest store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create quest store dir: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write quest store: %w", err)
	}
	return nil
}

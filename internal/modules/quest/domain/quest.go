package domain

import (
	"fmt"
	"strings"
	"time"

	"questbook/internal/platform/markup"
)

const SchemaVersion = 1

const (
	// DefaultIcon is the cosmetic token used when a record carries none.
	DefaultIcon = "book"

	// DefaultDifficulty matches what the create command seeds.
	DefaultDifficulty = "<red>Hard</red>"

	// DefaultPage seeds a freshly created quest so pages are never empty.
	DefaultPage = "This is the default book contents. You can edit this to provide an appropriate description as you wish!"

	MaxIDLength   = 48
	loreWrapWidth = 60
)

// Quest is the durable unit of authored content.
type Quest struct {
	ID          string
	DisplayName string
	Author      string
	Difficulty  string
	Description string
	Icon        string
	Pages       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New builds a quest with the creation defaults. The id must already be
// normalized (see platform/slug).
func New(id, displayName, author string, now time.Time) *Quest {
	return &Quest{
		ID:          id,
		DisplayName: displayName,
		Author:      author,
		Difficulty:  DefaultDifficulty,
		Icon:        DefaultIcon,
		Pages:       []string{DefaultPage},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (q *Quest) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("quest id is required")
	}
	if len([]rune(q.ID)) > MaxIDLength {
		return fmt.Errorf("quest id must be at most %d characters", MaxIDLength)
	}
	if strings.TrimSpace(q.DisplayName) == "" {
		return fmt.Errorf("display name is required")
	}
	return nil
}

// Normalize repairs a record loaded from storage so downstream invariants
// hold: pages are never nil and the icon falls back to the default token.
func (q *Quest) Normalize() {
	q.ID = strings.TrimSpace(q.ID)
	if q.Icon == "" {
		q.Icon = DefaultIcon
	}
	if q.Pages == nil {
		q.Pages = []string{DefaultPage}
	}
}

// Artifact is the derived display token shown in a browse slot. It is
// recomputed from the record's text fields on every read; only the icon is
// authored state.
type Artifact struct {
	Icon  string
	Label string
	Lore  []string
}

// Artifact derives the display token for the record.
func (q *Quest) Artifact() Artifact {
	icon := q.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	lore := []string{"Difficulty: " + markup.Strip(q.Difficulty)}
	if q.Description != "" {
		lore = append(lore, markup.Wrap("Description: "+markup.Strip(q.Description), loreWrapWidth)...)
	}
	return Artifact{
		Icon:  icon,
		Label: markup.Strip(q.DisplayName),
		Lore:  lore,
	}
}

func (a Artifact) Equal(other Artifact) bool {
	if a.Icon != other.Icon || a.Label != other.Label || len(a.Lore) != len(other.Lore) {
		return false
	}
	for i := range a.Lore {
		if a.Lore[i] != other.Lore[i] {
			return false
		}
	}
	return true
}

// Field names a mutable text field addressable by the edit command.
type Field string

const (
	FieldDisplayName Field = "displayname"
	FieldAuthor      Field = "author"
	FieldDifficulty  Field = "difficulty"
	FieldDescription Field = "description"
)

func ParseField(raw string) (Field, error) {
	switch Field(strings.ToLower(raw)) {
	case FieldDisplayName:
		return FieldDisplayName, nil
	case FieldAuthor:
		return FieldAuthor, nil
	case FieldDifficulty:
		return FieldDifficulty, nil
	case FieldDescription:
		return FieldDescription, nil
	default:
		return "", fmt.Errorf("unknown quest field %q", raw)
	}
}

// Set applies the field mutation.
func (q *Quest) Set(field Field, value string) {
	switch field {
	case FieldDisplayName:
		q.DisplayName = value
	case FieldAuthor:
		q.Author = value
	case FieldDifficulty:
		q.Difficulty = value
	case FieldDescription:
		q.Description = value
	}
}

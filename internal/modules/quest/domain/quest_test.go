package domain_test

import (
	"strings"
	"testing"
	"time"

	"questbook/internal/modules/quest/domain"
)

func TestNewSeedsDefaults(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	q := domain.New("dragon_quest", "Dragon Quest", "steve", now)

	if q.Difficulty != domain.DefaultDifficulty {
		t.Fatalf("difficulty = %q, want default", q.Difficulty)
	}
	if q.Icon != domain.DefaultIcon {
		t.Fatalf("icon = %q, want %q", q.Icon, domain.DefaultIcon)
	}
	if len(q.Pages) != 1 || q.Pages[0] != domain.DefaultPage {
		t.Fatalf("pages = %v, want one default page", q.Pages)
	}
	if !q.CreatedAt.Equal(now) || !q.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not seeded from now")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	now := time.Now()
	cases := []struct {
		name    string
		mutate  func(*domain.Quest)
		wantErr bool
	}{
		{"valid", func(*domain.Quest) {}, false},
		{"blank id", func(q *domain.Quest) { q.ID = "  " }, true},
		{"id too long", func(q *domain.Quest) { q.ID = strings.Repeat("x", domain.MaxIDLength+1) }, true},
		{"id at limit", func(q *domain.Quest) { q.ID = strings.Repeat("x", domain.MaxIDLength) }, false},
		{"blank display name", func(q *domain.Quest) { q.DisplayName = "" }, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			q := domain.New("id", "Name", "author", now)
			tc.mutate(q)
			err := q.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeRepairsLoadedRecord(t *testing.T) {
	t.Parallel()
	q := &domain.Quest{ID: " dragon ", DisplayName: "Dragon"}
	q.Normalize()
	if q.ID != "dragon" {
		t.Fatalf("id = %q, want trimmed", q.ID)
	}
	if q.Icon != domain.DefaultIcon {
		t.Fatalf("icon = %q, want default", q.Icon)
	}
	if q.Pages == nil {
		t.Fatal("pages must never be nil after Normalize")
	}
}

func TestArtifactDerivation(t *testing.T) {
	t.Parallel()
	q := domain.New("dragon", "<gold>Dragon Quest</gold>", "steve", time.Now())
	q.Description = "<gray>Slay the beast</gray>"

	artifact := q.Artifact()
	if artifact.Label != "Dragon Quest" {
		t.Fatalf("label = %q, want markup stripped", artifact.Label)
	}
	if artifact.Icon != domain.DefaultIcon {
		t.Fatalf("icon = %q", artifact.Icon)
	}
	if len(artifact.Lore) < 2 {
		t.Fatalf("lore = %v, want difficulty and description lines", artifact.Lore)
	}
	if artifact.Lore[0] != "Difficulty: Hard" {
		t.Fatalf("lore[0] = %q", artifact.Lore[0])
	}
	if artifact.Lore[1] != "Description: Slay the beast" {
		t.Fatalf("lore[1] = %q", artifact.Lore[1])
	}
}

func TestArtifactEqualIgnoresSourceFields(t *testing.T) {
	t.Parallel()
	now := time.Now()
	a := domain.New("dragon", "Dragon", "steve", now)
	b := domain.New("dragon", "Dragon", "alex", now)
	if !a.Artifact().Equal(b.Artifact()) {
		t.Fatal("artifacts with identical display fields must compare equal")
	}

	b.Difficulty = "<green>Easy</green>"
	if a.Artifact().Equal(b.Artifact()) {
		t.Fatal("differing lore must not compare equal")
	}
}

func TestParseField(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"displayname", "DISPLAYNAME", "author", "difficulty", "description"} {
		if _, err := domain.ParseField(raw); err != nil {
			t.Fatalf("ParseField(%q): %v", raw, err)
		}
	}
	if _, err := domain.ParseField("pages"); err == nil {
		t.Fatal("pages is not an addressable field")
	}
}

func TestSet(t *testing.T) {
	t.Parallel()
	q := domain.New("dragon", "Dragon", "steve", time.Now())
	q.Set(domain.FieldAuthor, "alex")
	if q.Author != "alex" {
		t.Fatalf("author = %q", q.Author)
	}
	q.Set(domain.FieldDifficulty, "<green>Easy</green>")
	if q.Difficulty != "<green>Easy</green>" {
		t.Fatalf("difficulty = %q", q.Difficulty)
	}
}

package out_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	out "questbook/internal/modules/quest/adapter/out"
	"questbook/internal/modules/quest/domain"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	store := out.NewYAMLRecordStore(filepath.Join(t.TempDir(), "quests.yml"))
	quests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(quests) != 0 {
		t.Fatalf("quests = %v, want empty", quests)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "quests.yml")
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	quest := domain.New("dragon", "Dragon Quest", "steve", now)
	quest.Description = "Slay the beast"
	quest.Pages = []string{"page one", "page two"}
	if err := out.NewYAMLRecordStore(path).Save(ctx, []*domain.Quest{quest}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh store over the same file sees the same records, which is what
	// a process restart does.
	loaded, err := out.NewYAMLRecordStore(path).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded = %d records", len(loaded))
	}
	got := loaded[0]
	if got.ID != "dragon" || got.DisplayName != "Dragon Quest" || got.Author != "steve" {
		t.Fatalf("record = %+v", got)
	}
	if got.Description != "Slay the beast" {
		t.Fatalf("description = %q", got.Description)
	}
	if !reflect.DeepEqual(got.Pages, []string{"page one", "page two"}) {
		t.Fatalf("pages = %v", got.Pages)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestSaveOverwritesWholeDocument(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "quests.yml")
	store := out.NewYAMLRecordStore(path)
	ctx := context.Background()
	now := time.Now().UTC()

	first := domain.New("dragon", "Dragon", "steve", now)
	second := domain.New("cave", "Cave", "alex", now)
	if err := store.Save(ctx, []*domain.Quest{first, second}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, []*domain.Quest{second}); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "cave" {
		t.Fatalf("loaded = %v, want only the surviving record", loaded)
	}
}

func TestLoadRejectsCorruptDocument(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "quests.yml")
	if err := os.WriteFile(path, []byte("quests: [not: valid: yaml"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := out.NewYAMLRecordStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected decode error for corrupt document")
	}
}

package usecase_test

import (
	"context"
	"fmt"
	"testing"

	hclog "github.com/hashicorp/go-hclog"

	"questbook/internal/modules/book/domain"
	"questbook/internal/modules/book/dto"
	bookin "questbook/internal/modules/book/port/in"
	"questbook/internal/modules/book/service"
	"questbook/internal/modules/book/usecase"
	questdomain "questbook/internal/modules/quest/domain"
)

type fakeCatalog struct {
	entries []domain.Entry
}

func (c *fakeCatalog) List(context.Context) ([]domain.Entry, error) { return c.entries, nil }

type allowAllPerms struct{}

func (allowAllPerms) Has(string, string) bool { return true }

type nullPresenter struct{}

func (nullPresenter) OpenView(context.Context, string, domain.View) error { return nil }
func (nullPresenter) CloseView(context.Context, string) error             { return nil }
func (nullPresenter) OpenBook(context.Context, string, domain.Book) error { return nil }

type seqIDs struct {
	n int
}

func (g *seqIDs) New(kind string) string {
	g.n++
	return fmt.Sprintf("%s-%d", kind, g.n)
}

func newUsecase(entries ...domain.Entry) bookin.Usecase {
	tracker := service.NewViewTracker(&fakeCatalog{entries: entries}, allowAllPerms{}, nullPresenter{}, nil, &seqIDs{}, hclog.NewNullLogger())
	return usecase.NewInteractor(tracker)
}

func dragonEntry() domain.Entry {
	return domain.Entry{
		ID:          "dragon",
		DisplayName: "Dragon",
		Author:      "steve",
		Pages:       []string{"page one"},
		Artifact:    questdomain.Artifact{Icon: "book", Label: "Dragon"},
	}
}

func TestOpenProducesSlotGrid(t *testing.T) {
	t.Parallel()
	uc := newUsecase(dragonEntry())

	view, err := uc.Open(context.Background(), "steve")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(view.Slots) != domain.GridSlots {
		t.Fatalf("slots = %d", len(view.Slots))
	}
	kinds := map[string]int{}
	for _, slot := range view.Slots {
		kinds[slot.Kind]++
	}
	if kinds["quest"] != 1 || kinds["header"] != 1 {
		t.Fatalf("kinds = %v", kinds)
	}
	if view.Slots[domain.ContentStart].QuestID != "dragon" {
		t.Fatalf("content slot = %+v", view.Slots[domain.ContentStart])
	}
}

func TestClickOpensBook(t *testing.T) {
	t.Parallel()
	uc := newUsecase(dragonEntry())
	ctx := context.Background()

	view, err := uc.Open(ctx, "steve")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	out, err := uc.Click(ctx, dto.ClickInput{
		User:   "steve",
		ViewID: view.ID,
		Icon:   "book",
		Label:  "Dragon",
	})
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if !out.Opened || out.QuestID != "dragon" {
		t.Fatalf("out = %+v", out)
	}
	if out.Book.Title != "Dragon" || len(out.Book.Pages) != 1 {
		t.Fatalf("book = %+v", out.Book)
	}
}

func TestClickOnDecorationOpensNothing(t *testing.T) {
	t.Parallel()
	uc := newUsecase(dragonEntry())
	ctx := context.Background()

	view, err := uc.Open(ctx, "steve")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	out, err := uc.Click(ctx, dto.ClickInput{
		User:   "steve",
		ViewID: view.ID,
		Icon:   "pane",
	})
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if out.Opened {
		t.Fatalf("out = %+v, decoration must not open a book", out)
	}
}

func TestClickWithStaleViewID(t *testing.T) {
	t.Parallel()
	uc := newUsecase(dragonEntry())
	ctx := context.Background()

	if _, err := uc.Open(ctx, "steve"); err != nil {
		t.Fatalf("open: %v", err)
	}
	out, err := uc.Click(ctx, dto.ClickInput{
		User:   "steve",
		ViewID: "some-older-view",
		Icon:   "book",
		Label:  "Dragon",
	})
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if out.Opened {
		t.Fatal("a stale view id must not resolve")
	}
}

package service

import (
	"context"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"questbook/internal/modules/book/domain"
	bookout "questbook/internal/modules/book/port/out"
	questdomain "questbook/internal/modules/quest/domain"
	"questbook/internal/platform/id"
	"questbook/internal/platform/markup"
)

// ViewTracker binds each user to the browse view they currently have open so
// later input events can be validated against it, and so every open view can
// be force-closed on shutdown.
type ViewTracker struct {
	mu    sync.Mutex
	views map[string]domain.View // user -> open view

	catalog   bookout.Catalog
	perms     bookout.Permissions
	presenter bookout.Presenter
	expander  bookout.Expander
	ids       id.Generator
	log       hclog.Logger
}

func NewViewTracker(catalog bookout.Catalog, perms bookout.Permissions, presenter bookout.Presenter, expander bookout.Expander, ids id.Generator, log hclog.Logger) *ViewTracker {
	return &ViewTracker{
		views:     make(map[string]domain.View),
		catalog:   catalog,
		perms:     perms,
		presenter: presenter,
		expander:  expander,
		ids:       ids,
		log:       log,
	}
}

// Open builds a fresh browse view over the records the user may see and
// registers it as the user's current view. Opening replaces any previously
// tracked view for the same user.
func (t *ViewTracker) Open(ctx context.Context, user string) (domain.View, error) {
	entries, err := t.catalog.List(ctx)
	if err != nil {
		return domain.View{}, fmt.Errorf("list quests: %w", err)
	}

	visible := make([]domain.Entry, 0, len(entries))
	viewAll := t.perms.Has(user, domain.PermViewAll)
	for _, entry := range entries {
		if !viewAll && !t.perms.Has(user, domain.PermView(entry.ID)) {
			continue
		}
		visible = append(visible, entry)
	}

	view := domain.BuildView(t.ids.New("view"), user, visible)
	if err := t.presenter.OpenView(ctx, user, view); err != nil {
		return domain.View{}, fmt.Errorf("open browse view: %w", err)
	}

	t.mu.Lock()
	t.views[user] = view
	t.mu.Unlock()
	t.log.Debug("browse view opened", "user", user, "view", view.ID, "quests", len(visible))
	return view, nil
}

// ResolveClick validates that the event's view is still the one tracked for
// the user, then matches the clicked artifact against the live records. A
// stale view lazily deregisters and resolves to nothing; so does a click on
// border decoration. The default slot behavior is always cancelled for
// tracked views.
func (t *ViewTracker) ResolveClick(ctx context.Context, user, viewID string, clicked questdomain.Artifact) (domain.Entry, bool, error) {
	t.mu.Lock()
	tracked, ok := t.views[user]
	if !ok {
		t.mu.Unlock()
		return domain.Entry{}, false, nil
	}
	if tracked.ID != viewID {
		delete(t.views, user)
		t.mu.Unlock()
		t.log.Debug("dropped stale view binding", "user", user, "view", viewID)
		return domain.Entry{}, false, nil
	}
	t.mu.Unlock()

	entries, err := t.catalog.List(ctx)
	if err != nil {
		return domain.Entry{}, false, fmt.Errorf("list quests: %w", err)
	}
	for _, entry := range entries {
		if entry.Artifact.Equal(clicked) {
			return entry, true, nil
		}
	}
	return domain.Entry{}, false, nil
}

// Read closes the user's browse view and opens the read-only book for the
// entry, with per-viewer placeholders expanded.
func (t *ViewTracker) Read(ctx context.Context, user string, entry domain.Entry) (domain.Book, error) {
	t.mu.Lock()
	_, open := t.views[user]
	delete(t.views, user)
	t.mu.Unlock()
	if open {
		if err := t.presenter.CloseView(ctx, user); err != nil {
			t.log.Warn("failed to close browse view", "user", user, "error", err)
		}
	}

	pages := entry.Pages
	if t.expander != nil {
		expanded, err := t.expander.Expand(ctx, user, entry.ID, entry.Pages)
		if err != nil {
			t.log.Warn("placeholder expansion failed, showing raw pages", "quest", entry.ID, "error", err)
		} else {
			pages = expanded
		}
	}

	book := domain.Book{
		Title:  markup.Strip(entry.DisplayName),
		Author: markup.Strip(entry.Author),
		Pages:  pages,
	}
	if err := t.presenter.OpenBook(ctx, user, book); err != nil {
		return domain.Book{}, fmt.Errorf("open book: %w", err)
	}
	return book, nil
}

// CloseAll force-closes every tracked view and clears the map. Called on
// shutdown and on reload so view handles never leak across the boundary.
func (t *ViewTracker) CloseAll(ctx context.Context) {
	t.mu.Lock()
	users := make([]string, 0, len(t.views))
	for user := range t.views {
		users = append(users, user)
	}
	t.views = make(map[string]domain.View)
	t.mu.Unlock()

	for _, user := range users {
		if err := t.presenter.CloseView(ctx, user); err != nil {
			t.log.Warn("failed to close view on shutdown", "user", user, "error", err)
		}
	}
	if len(users) > 0 {
		t.log.Info("closed tracked browse views", "count", len(users))
	}
}

// Tracked reports the number of open view sessions.
func (t *ViewTracker) Tracked() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.views)
}

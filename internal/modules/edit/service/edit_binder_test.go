package service_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	hclog "github.com/hashicorp/go-hclog"

	"questbook/internal/modules/edit/domain"
	"questbook/internal/modules/edit/service"
	apperrors "questbook/internal/platform/errors"
)

type fakeQuestWriter struct {
	records    map[string]domain.Record
	committed  map[string][]string
	replaceErr error
}

func newFakeQuestWriter(records ...domain.Record) *fakeQuestWriter {
	w := &fakeQuestWriter{records: make(map[string]domain.Record), committed: make(map[string][]string)}
	for _, r := range records {
		w.records[r.ID] = r
	}
	return w
}

func (w *fakeQuestWriter) Find(_ context.Context, id string) (domain.Record, error) {
	record, ok := w.records[id]
	if !ok {
		return domain.Record{}, fmt.Errorf("quest %q: %w", id, apperrors.ErrNotFound)
	}
	return record, nil
}

func (w *fakeQuestWriter) ReplacePages(_ context.Context, id string, pages []string) error {
	if w.replaceErr != nil {
		return w.replaceErr
	}
	if _, ok := w.records[id]; !ok {
		return fmt.Errorf("quest %q: %w", id, apperrors.ErrNotFound)
	}
	w.committed[id] = pages
	return nil
}

type fakePossession struct {
	grantErr error
	granted  []domain.Draft
	removed  []string
}

func (p *fakePossession) Grant(_ context.Context, _ string, draft domain.Draft) error {
	if p.grantErr != nil {
		return p.grantErr
	}
	p.granted = append(p.granted, draft)
	return nil
}

func (p *fakePossession) Remove(_ context.Context, _ string, artifactID string) error {
	p.removed = append(p.removed, artifactID)
	return nil
}

type seqIDs struct {
	n int
}

func (g *seqIDs) New(kind string) string {
	g.n++
	return fmt.Sprintf("%s-%d", kind, g.n)
}

func dragonRecord() domain.Record {
	return domain.Record{ID: "dragon", DisplayName: "Dragon Quest", Pages: []string{"page one"}}
}

func textPages(texts ...string) []domain.PageContent {
	out := make([]domain.PageContent, 0, len(texts))
	for _, text := range texts {
		out = append(out, domain.PageContent{Kind: domain.PageText, Text: text})
	}
	return out
}

func TestIssuePreloadsRecordPages(t *testing.T) {
	t.Parallel()
	possession := &fakePossession{}
	binder := service.NewBinder(&seqIDs{}, newFakeQuestWriter(dragonRecord()), possession, hclog.NewNullLogger())

	draft, err := binder.Issue(context.Background(), "steve", "dragon")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if draft.QuestID != "dragon" || draft.Label != "Dragon Quest" {
		t.Fatalf("draft = %+v", draft)
	}
	if !reflect.DeepEqual(draft.Pages, []string{"page one"}) {
		t.Fatalf("pages = %v", draft.Pages)
	}
	if len(possession.granted) != 1 {
		t.Fatalf("granted = %v", possession.granted)
	}
	if binder.Active() != 1 {
		t.Fatalf("active = %d", binder.Active())
	}
}

func TestIssueUnknownQuest(t *testing.T) {
	t.Parallel()
	binder := service.NewBinder(&seqIDs{}, newFakeQuestWriter(), &fakePossession{}, hclog.NewNullLogger())
	_, err := binder.Issue(context.Background(), "steve", "ghost")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestIssueFullInventoryRegistersNoSession(t *testing.T) {
	t.Parallel()
	possession := &fakePossession{grantErr: apperrors.ErrNoCapacity}
	binder := service.NewBinder(&seqIDs{}, newFakeQuestWriter(dragonRecord()), possession, hclog.NewNullLogger())

	_, err := binder.Issue(context.Background(), "steve", "dragon")
	if !errors.Is(err, apperrors.ErrNoCapacity) {
		t.Fatalf("err = %v, want ErrNoCapacity", err)
	}
	if binder.Active() != 0 {
		t.Fatalf("active = %d, a rejected grant must not register a session", binder.Active())
	}
}

func TestSavedCommitsAndRekeys(t *testing.T) {
	t.Parallel()
	quests := newFakeQuestWriter(dragonRecord())
	binder := service.NewBinder(&seqIDs{}, quests, &fakePossession{}, hclog.NewNullLogger())
	ctx := context.Background()

	draft, err := binder.Issue(ctx, "steve", "dragon")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	handled, err := binder.Saved(ctx, domain.SavedEvent{
		User:          "steve",
		OldArtifactID: draft.ArtifactID,
		NewArtifactID: "draft-next",
		Pages:         textPages("rewritten"),
	})
	if err != nil {
		t.Fatalf("saved: %v", err)
	}
	if !handled {
		t.Fatal("handled = false")
	}
	if !reflect.DeepEqual(quests.committed["dragon"], []string{"rewritten"}) {
		t.Fatalf("committed = %v", quests.committed["dragon"])
	}

	// The old identity is spent; only the new one maps to the session.
	handled, err = binder.Saved(ctx, domain.SavedEvent{OldArtifactID: draft.ArtifactID, NewArtifactID: "x", Pages: textPages("again")})
	if err != nil {
		t.Fatalf("saved old id: %v", err)
	}
	if handled {
		t.Fatal("old artifact identity must no longer be recognized")
	}
	handled, err = binder.Saved(ctx, domain.SavedEvent{OldArtifactID: "draft-next", NewArtifactID: "draft-final", Pages: textPages("again")})
	if err != nil {
		t.Fatalf("saved new id: %v", err)
	}
	if !handled {
		t.Fatal("re-keyed identity must be recognized")
	}
}

func TestSavedUnknownArtifactIsNotHandled(t *testing.T) {
	t.Parallel()
	quests := newFakeQuestWriter(dragonRecord())
	binder := service.NewBinder(&seqIDs{}, quests, &fakePossession{}, hclog.NewNullLogger())

	handled, err := binder.Saved(context.Background(), domain.SavedEvent{
		OldArtifactID: "not-ours",
		NewArtifactID: "still-not-ours",
		Pages:         textPages("text"),
	})
	if err != nil {
		t.Fatalf("saved: %v", err)
	}
	if handled {
		t.Fatal("an unknown artifact is another host feature's event")
	}
	if len(quests.committed) != 0 {
		t.Fatalf("committed = %v, nothing should be written", quests.committed)
	}
}

func TestSigningEndsSessionAndRemovesPossession(t *testing.T) {
	t.Parallel()
	quests := newFakeQuestWriter(dragonRecord())
	possession := &fakePossession{}
	binder := service.NewBinder(&seqIDs{}, quests, possession, hclog.NewNullLogger())
	ctx := context.Background()

	draft, err := binder.Issue(ctx, "steve", "dragon")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	handled, err := binder.Saved(ctx, domain.SavedEvent{
		User:          "steve",
		OldArtifactID: draft.ArtifactID,
		NewArtifactID: "signed-copy",
		Pages:         textPages("final text"),
		Signing:       true,
	})
	if err != nil {
		t.Fatalf("saved: %v", err)
	}
	if !handled {
		t.Fatal("handled = false")
	}
	if binder.Active() != 0 {
		t.Fatalf("active = %d, signing must end the session", binder.Active())
	}
	if !reflect.DeepEqual(possession.removed, []string{"signed-copy"}) {
		t.Fatalf("removed = %v, the finalized artifact must leave possession", possession.removed)
	}
}

func TestSavedDropsNonTextPages(t *testing.T) {
	t.Parallel()
	quests := newFakeQuestWriter(dragonRecord())
	binder := service.NewBinder(&seqIDs{}, quests, &fakePossession{}, hclog.NewNullLogger())
	ctx := context.Background()

	draft, err := binder.Issue(ctx, "steve", "dragon")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = binder.Saved(ctx, domain.SavedEvent{
		OldArtifactID: draft.ArtifactID,
		NewArtifactID: "next",
		Pages: []domain.PageContent{
			{Kind: domain.PageText, Text: "kept"},
			{Kind: domain.PageOther, Text: "dropped"},
			{Kind: domain.PageText, Text: "also kept"},
		},
	})
	if err != nil {
		t.Fatalf("saved: %v", err)
	}
	if !reflect.DeepEqual(quests.committed["dragon"], []string{"kept", "also kept"}) {
		t.Fatalf("committed = %v", quests.committed["dragon"])
	}
}

func TestSavedAgainstDeletedRecordEndsSession(t *testing.T) {
	t.Parallel()
	quests := newFakeQuestWriter(dragonRecord())
	binder := service.NewBinder(&seqIDs{}, quests, &fakePossession{}, hclog.NewNullLogger())
	ctx := context.Background()

	draft, err := binder.Issue(ctx, "steve", "dragon")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	delete(quests.records, "dragon")

	handled, err := binder.Saved(ctx, domain.SavedEvent{
		OldArtifactID: draft.ArtifactID,
		NewArtifactID: "next",
		Pages:         textPages("orphaned"),
	})
	if !handled {
		t.Fatal("handled = false, the event was still ours")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if binder.Active() != 0 {
		t.Fatalf("active = %d, an unrecoverable session must end", binder.Active())
	}
}

func TestSavedKeepsSessionOnPersistFailure(t *testing.T) {
	t.Parallel()
	quests := newFakeQuestWriter(dragonRecord())
	quests.replaceErr = apperrors.Persistence("quest records", errors.New("disk full"))
	binder := service.NewBinder(&seqIDs{}, quests, &fakePossession{}, hclog.NewNullLogger())
	ctx := context.Background()

	draft, err := binder.Issue(ctx, "steve", "dragon")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	handled, err := binder.Saved(ctx, domain.SavedEvent{
		OldArtifactID: draft.ArtifactID,
		NewArtifactID: "next",
		Pages:         textPages("text"),
	})
	if !handled || err == nil {
		t.Fatalf("handled=%v err=%v, want handled with surfaced error", handled, err)
	}
	if binder.Active() != 1 {
		t.Fatalf("active = %d, the old binding must survive a failed write", binder.Active())
	}

	// Retrying under the old identity works once the store recovers.
	quests.replaceErr = nil
	handled, err = binder.Saved(ctx, domain.SavedEvent{
		OldArtifactID: draft.ArtifactID,
		NewArtifactID: "next",
		Pages:         textPages("text"),
	})
	if !handled || err != nil {
		t.Fatalf("retry: handled=%v err=%v", handled, err)
	}
}

func TestDropAllDiscardsSessions(t *testing.T) {
	t.Parallel()
	quests := newFakeQuestWriter(dragonRecord())
	binder := service.NewBinder(&seqIDs{}, quests, &fakePossession{}, hclog.NewNullLogger())
	ctx := context.Background()

	if _, err := binder.Issue(ctx, "steve", "dragon"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := binder.Issue(ctx, "alex", "dragon"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	binder.DropAll()
	if binder.Active() != 0 {
		t.Fatalf("active = %d after DropAll", binder.Active())
	}
}

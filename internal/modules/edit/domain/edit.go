package domain

// Draft is the writable artifact handed to an editing user. Its ArtifactID is
// the capability token: possession of a correctly-identified draft is what
// authorizes the eventual commit, not the acting identity.
type Draft struct {
	ArtifactID string
	QuestID    string
	Label      string
	Pages      []string
}

// Record is the slice of a quest the binder works against.
type Record struct {
	ID          string
	DisplayName string
	Pages       []string
}

type PageKind string

const (
	PageText  PageKind = "text"
	PageOther PageKind = "other"
)

// PageContent is one page as surfaced by the editing host. Hosts may emit
// non-text content; only text pages survive a commit.
type PageContent struct {
	Kind PageKind
	Text string
}

func TextPages(pages []PageContent) []string {
	out := make([]string, 0, len(pages))
	for _, page := range pages {
		if page.Kind != PageText {
			continue
		}
		out = append(out, page.Text)
	}
	return out
}

// SavedEvent is the host notification that an editor saved or signed a draft.
// Draft saves reassign artifact identity, so the event carries both the old
// and the new token.
type SavedEvent struct {
	User          string
	OldArtifactID string
	NewArtifactID string
	Pages         []PageContent
	Signing       bool
}

package dto

type IssueInput struct {
	User    string
	QuestID string
}

type DraftOutput struct {
	ArtifactID string
	QuestID    string
	Label      string
	Pages      []string
}

type PageInput struct {
	Kind string
	Text string
}

type SavedInput struct {
	User          string
	OldArtifactID string
	NewArtifactID string
	Pages         []PageInput
	Signing       bool
}

type SavedOutput struct {
	Handled bool
}

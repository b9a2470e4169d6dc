package dto

type SlotOutput struct {
	Index   int
	Kind    string
	QuestID string
	Icon    string
	Label   string
	Lore    []string
}

type ViewOutput struct {
	ID    string
	Title string
	Slots []SlotOutput
}

type ClickInput struct {
	User   string
	ViewID string
	Icon   string
	Label  string
	Lore   []string
}

type ClickOutput struct {
	Opened  bool
	QuestID string
	Book    BookOutput
}

type BookOutput struct {
	Title  string
	Author string
	Pages  []string
}

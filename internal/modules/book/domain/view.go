package domain

import (
	questdomain "questbook/internal/modules/quest/domain"
)

// Browse grid geometry: a 9x6 inventory. The top and bottom rows are border
// decoration, slot 4 holds the header item, and quests fill slots 9 through
// 36. Records beyond the content region are silently omitted.
const (
	GridSlots      = 54
	HeaderSlot     = 4
	borderTopEnd   = 8
	borderBottom   = 45
	ContentStart   = 9
	ContentEnd     = 36
	BrowseTitle    = "Quests"
	borderLabel    = ""
	headerIcon     = "book"
	borderIconName = "pane"
)

type SlotKind int

const (
	SlotEmpty SlotKind = iota
	SlotBorder
	SlotHeader
	SlotQuest
)

type Slot struct {
	Kind     SlotKind
	QuestID  string
	Artifact questdomain.Artifact
}

// View is one opened browse surface. Its ID is the identity the tracker
// validates input events against.
type View struct {
	ID    string
	Owner string
	Title string
	Slots []Slot
}

// Entry is the catalog's projection of one visible quest.
type Entry struct {
	ID          string
	DisplayName string
	Author      string
	Pages       []string
	Artifact    questdomain.Artifact
}

// BuildView lays the entries out on the grid.
func BuildView(id, owner string, entries []Entry) View {
	view := View{ID: id, Owner: owner, Title: BrowseTitle, Slots: make([]Slot, GridSlots)}
	for i := 0; i <= borderTopEnd; i++ {
		view.Slots[i] = Slot{Kind: SlotBorder, Artifact: questdomain.Artifact{Icon: borderIconName, Label: borderLabel}}
	}
	for i := borderBottom; i < GridSlots; i++ {
		view.Slots[i] = Slot{Kind: SlotBorder, Artifact: questdomain.Artifact{Icon: borderIconName, Label: borderLabel}}
	}
	view.Slots[HeaderSlot] = Slot{Kind: SlotHeader, Artifact: questdomain.Artifact{Icon: headerIcon, Label: BrowseTitle}}

	index := ContentStart
	for _, entry := range entries {
		if index > ContentEnd {
			break
		}
		view.Slots[index] = Slot{Kind: SlotQuest, QuestID: entry.ID, Artifact: entry.Artifact}
		index++
	}
	return view
}

// Book is the read-only rendering handed to the presentation host.
type Book struct {
	Title  string
	Author string
	Pages  []string
}

package browse

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bookdomain "questbook/internal/modules/book/domain"
	"questbook/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// ClickMsg is emitted when the user activates a slot. The parent model routes
// it through the book use-case, which decides whether anything opens.
type ClickMsg struct {
	Index int
	Slot  bookdomain.Slot
}

// ─── model ───────────────────────────────────────────────────────────────────

const gridColumns = 9

// Model is the self-contained Bubble Tea model for the Browse tab. It renders
// the 9x6 browse grid exactly as the tracker laid it out.
type Model struct {
	view    bookdomain.View
	hasView bool
	cursor  int
	width   int
	height  int
}

func New() Model {
	return Model{cursor: bookdomain.ContentStart}
}

// SetView installs a freshly opened view and resets the cursor onto the
// content region.
func (m *Model) SetView(view bookdomain.View) {
	m.view = view
	m.hasView = true
	m.cursor = bookdomain.ContentStart
}

// Clear drops the current view, e.g. after the tracker closed it.
func (m *Model) Clear() {
	m.view = bookdomain.View{}
	m.hasView = false
}

// ViewID returns the identity of the currently shown view, if any.
func (m Model) ViewID() (string, bool) {
	if !m.hasView {
		return "", false
	}
	return m.view.ID, true
}

// SelectedQuestID returns the quest under the cursor, if the cursor sits on a
// quest slot.
func (m Model) SelectedQuestID() (string, bool) {
	if !m.hasView || m.cursor < 0 || m.cursor >= len(m.view.Slots) {
		return "", false
	}
	slot := m.view.Slots[m.cursor]
	if slot.Kind != bookdomain.SlotQuest {
		return "", false
	}
	return slot.QuestID, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if !m.hasView {
			return m, nil
		}
		switch msg.String() {
		case "up":
			if m.cursor-gridColumns >= 0 {
				m.cursor -= gridColumns
			}
		case "down":
			if m.cursor+gridColumns < bookdomain.GridSlots {
				m.cursor += gridColumns
			}
		case "left":
			if m.cursor%gridColumns > 0 {
				m.cursor--
			}
		case "right":
			if m.cursor%gridColumns < gridColumns-1 {
				m.cursor++
			}
		case "enter":
			slot := m.view.Slots[m.cursor]
			index := m.cursor
			return m, func() tea.Msg { return ClickMsg{Index: index, Slot: slot} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.hasView {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No view open. Use the palette (:) and run book:open."))
	}

	grid := m.renderGrid()
	detail := m.renderDetail()

	gridW := lipgloss.Width(grid)
	detailW := m.width - gridW - 4
	if detailW < 20 {
		detailW = 20
	}
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW).
		Padding(1).
		Render(detail)

	title := theme.Title.Render(m.view.Title) + "\n"
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", detailPane)
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderGrid() string {
	var rows []string
	for row := 0; row < bookdomain.GridSlots/gridColumns; row++ {
		var cells []string
		for col := 0; col < gridColumns; col++ {
			index := row*gridColumns + col
			cells = append(cells, m.renderCell(index))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(index int) string {
	slot := m.view.Slots[index]
	var glyph string
	var style lipgloss.Style
	switch slot.Kind {
	case bookdomain.SlotBorder:
		glyph = "▦"
		style = theme.Muted
	case bookdomain.SlotHeader:
		glyph = "◆"
		style = theme.Title
	case bookdomain.SlotQuest:
		glyph = "✦"
		style = lipgloss.NewStyle().Foreground(theme.Green)
	default:
		glyph = "·"
		style = theme.Muted
	}
	cell := " " + glyph + " "
	if index == m.cursor {
		return style.Background(theme.Surface1).Bold(true).Render(cell)
	}
	return style.Render(cell)
}

func (m Model) renderDetail() string {
	slot := m.view.Slots[m.cursor]
	switch slot.Kind {
	case bookdomain.SlotQuest:
		var sb strings.Builder
		sb.WriteString(theme.Title.Render(slot.Artifact.Label) + "\n\n")
		for _, line := range slot.Artifact.Lore {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n" + theme.Muted.Render("enter: read"))
		return sb.String()
	case bookdomain.SlotHeader:
		return theme.Title.Render(slot.Artifact.Label) + "\n\n" +
			theme.Muted.Render("Pick a quest below and press enter to read it.")
	default:
		return theme.Muted.Render("Nothing here.")
	}
}

package editor

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	editdto "questbook/internal/modules/edit/dto"
	"questbook/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SaveRequestedMsg is emitted when the user saves the draft. Signing means
// the user finalized the book; the parent model turns this into a saved event
// for the edit binder.
type SaveRequestedMsg struct {
	Draft   editdto.DraftOutput
	Pages   []string
	Signing bool
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the self-contained Bubble Tea model for the Editor tab: a paged
// writable draft of one quest's text.
type Model struct {
	area     textarea.Model
	draft    editdto.DraftOutput
	pages    []string
	page     int
	hasDraft bool
	width    int
	height   int
}

func New() Model {
	ta := textarea.New()
	ta.Placeholder = "Write the quest text…"
	ta.ShowLineNumbers = false
	return Model{area: ta}
}

// SetDraft loads an issued draft into the editor.
func (m *Model) SetDraft(draft editdto.DraftOutput) tea.Cmd {
	m.draft = draft
	m.pages = make([]string, len(draft.Pages))
	copy(m.pages, draft.Pages)
	if len(m.pages) == 0 {
		m.pages = []string{""}
	}
	m.page = 0
	m.hasDraft = true
	m.area.SetValue(m.pages[0])
	return m.area.Focus()
}

// Rebind swaps the draft's artifact identity after a successful plain save,
// matching the host's behavior of handing back a re-identified book.
func (m *Model) Rebind(artifactID string) {
	m.draft.ArtifactID = artifactID
}

// Clear drops the draft, e.g. after signing.
func (m *Model) Clear() {
	m.draft = editdto.DraftOutput{}
	m.pages = nil
	m.hasDraft = false
	m.area.Blur()
	m.area.SetValue("")
}

// Editing reports whether a draft is loaded and focused, in which case global
// key bindings must yield to allow free typing.
func (m Model) Editing() bool {
	return m.hasDraft && m.area.Focused()
}

func (m Model) Init() tea.Cmd { return textarea.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.area.SetWidth(m.width - 4)
		m.area.SetHeight(m.height - 4)

	case tea.KeyMsg:
		if !m.hasDraft {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+s":
			return m, m.saveCmd(false)
		case "ctrl+g":
			return m, m.saveCmd(true)
		case "ctrl+n":
			m.stashPage()
			m.pages = append(m.pages[:m.page+1], append([]string{""}, m.pages[m.page+1:]...)...)
			m.page++
			m.area.SetValue(m.pages[m.page])
			return m, nil
		case "ctrl+right":
			if m.page < len(m.pages)-1 {
				m.stashPage()
				m.page++
				m.area.SetValue(m.pages[m.page])
			}
			return m, nil
		case "ctrl+left":
			if m.page > 0 {
				m.stashPage()
				m.page--
				m.area.SetValue(m.pages[m.page])
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.hasDraft {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No draft open. Select a quest in Browse and run edit:pages."))
	}
	header := theme.Title.Render("Editing: "+m.draft.Label) + "  " +
		theme.Muted.Render(fmt.Sprintf("p.%d/%d", m.page+1, len(m.pages))) + "\n"
	footer := theme.Muted.Render("ctrl+s: save  ctrl+g: sign  ctrl+n: new page  ctrl+←/→: page")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.area.View(), footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) stashPage() {
	m.pages[m.page] = m.area.Value()
}

func (m *Model) saveCmd(signing bool) tea.Cmd {
	m.stashPage()
	draft := m.draft
	pages := make([]string, len(m.pages))
	copy(pages, m.pages)
	return func() tea.Msg {
		return SaveRequestedMsg{Draft: draft, Pages: pages, Signing: signing}
	}
}

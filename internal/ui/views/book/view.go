package book

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	bookdomain "questbook/internal/modules/book/domain"
	"questbook/internal/ui/theme"
)

// Model is the self-contained Bubble Tea model for the Book tab: a paged,
// read-only rendering of one quest's text.
type Model struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	book     bookdomain.Book
	page     int
	hasBook  bool
	width    int
	height   int
}

func New() Model {
	vp := viewport.New(0, 0)
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{viewport: vp, renderer: r}
}

// SetBook installs an opened book and shows its first page.
func (m *Model) SetBook(book bookdomain.Book) {
	m.book = book
	m.page = 0
	m.hasBook = true
	m.viewport.SetContent(m.renderPage())
	m.viewport.GotoTop()
}

// Clear drops the open book, e.g. when the view tracker closes everything.
func (m *Model) Clear() {
	m.book = bookdomain.Book{}
	m.hasBook = false
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.hasBook {
			m.viewport.SetContent(m.renderPage())
		}

	case tea.KeyMsg:
		if !m.hasBook {
			return m, nil
		}
		switch msg.String() {
		case "left":
			if m.page > 0 {
				m.page--
				m.viewport.SetContent(m.renderPage())
				m.viewport.GotoTop()
			}
		case "right":
			if m.page < len(m.book.Pages)-1 {
				m.page++
				m.viewport.SetContent(m.renderPage())
				m.viewport.GotoTop()
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.hasBook {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No book open. Read a quest from the Browse tab."))
	}
	header := m.renderHeader()
	footer := theme.Muted.Render(fmt.Sprintf("%.0f%%", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.viewport.Width = m.width
	// header ≈ 2 lines, footer = 1 line
	m.viewport.Height = m.height - 3
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderHeader() string {
	return theme.Title.Render(m.book.Title) + "  " +
		theme.Muted.Render("by "+m.book.Author) + "  " +
		theme.Muted.Render(fmt.Sprintf("p.%d/%d", m.page+1, len(m.book.Pages))) +
		theme.Muted.Render("  ←/→: page  ↑/↓: scroll") + "\n"
}

func (m Model) renderPage() string {
	if len(m.book.Pages) == 0 {
		return theme.Muted.Render("(empty book)")
	}
	page := m.book.Pages[m.page]
	if page == "" {
		return theme.Muted.Render("(blank page)")
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(page); err == nil {
			return rendered
		}
	}
	return page
}

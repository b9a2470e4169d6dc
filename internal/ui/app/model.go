package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bookdomain "questbook/internal/modules/book/domain"
	bookdto "questbook/internal/modules/book/dto"
	editdto "questbook/internal/modules/edit/dto"
	questdto "questbook/internal/modules/quest/dto"
	"questbook/internal/platform/id"
	"questbook/internal/ui/components"
	"questbook/internal/ui/theme"
	bookview "questbook/internal/ui/views/book"
	browseview "questbook/internal/ui/views/browse"
	editorview "questbook/internal/ui/views/editor"
	pluginsview "questbook/internal/ui/views/plugins"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type bookPort interface {
	Open(ctx context.Context, user string) (bookdto.ViewOutput, error)
	Click(ctx context.Context, input bookdto.ClickInput) (bookdto.ClickOutput, error)
}

type editPort interface {
	Issue(ctx context.Context, user, questID string) (editdto.DraftOutput, error)
	Saved(ctx context.Context, input editdto.SavedInput) (editdto.SavedOutput, error)
}

type questPort interface {
	Create(ctx context.Context, name, author, icon string) (questdto.QuestOutput, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpdateField(ctx context.Context, id, field, value string) (questdto.QuestOutput, error)
	SetIcon(ctx context.Context, id, icon string) (questdto.QuestOutput, error)
	Reindex(ctx context.Context) error
}

type permissionPort interface {
	Has(user, permission string) bool
}

// inventoryPort is the host-side artifact inventory. A plain save changes the
// draft's identity, so the inventory entry has to follow.
type inventoryPort interface {
	Rekey(user, oldArtifactID, newArtifactID string, pages []string)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabBrowse tabID = iota
	tabBook
	tabEditor
	tabPlugins
	tabCount
)

var tabLabels = [tabCount]string{
	"Browse", "Book", "Editor", "Plugins",
}

// ─── async messages ───────────────────────────────────────────────────────────

type viewOpenErrMsg struct{ err error }

type clickDoneMsg struct {
	out bookdto.ClickOutput
	err error
}

type draftIssuedMsg struct {
	draft editdto.DraftOutput
	err   error
}

type savedDoneMsg struct {
	newArtifactID string
	signing       bool
	out           editdto.SavedOutput
	err           error
}

type questChangedMsg struct {
	action string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Edit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read quest")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit pages")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Edit},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	user string

	book      bookPort
	edit      editPort
	quest     questPort
	perms     permissionPort
	inventory inventoryPort
	ids       id.Generator

	browseView browseview.Model
	bookView   bookview.Model
	editorView editorview.Model
	pluginView pluginsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	user string,
	book bookPort,
	edit editPort,
	quest questPort,
	perms permissionPort,
	inventory inventoryPort,
	ids id.Generator,
	plugins pluginsview.Port,
) Model {
	return Model{
		user:       user,
		book:       book,
		edit:       edit,
		quest:      quest,
		perms:      perms,
		inventory:  inventory,
		ids:        ids,
		browseView: browseview.New(),
		bookView:   bookview.New(),
		editorView: editorview.New(),
		pluginView: pluginsview.New(plugins),
		activeTab:  tabBrowse,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.pluginView.Init(),
		m.editorView.Init(),
		m.openViewCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	// Presenter-driven lifecycle: the view tracker owns what is shown.
	case ViewOpenedMsg:
		if msg.User == m.user {
			m.browseView.SetView(msg.View)
			m.status = "view opened"
		}

	case ViewClosedMsg:
		if msg.User == m.user {
			m.browseView.Clear()
		}

	case BookOpenedMsg:
		if msg.User == m.user {
			m.bookView.SetBook(msg.Book)
			m.activeTab = tabBook
			m.status = "reading: " + msg.Book.Title
		}

	case viewOpenErrMsg:
		if msg.err != nil {
			m.status = "open failed: " + msg.err.Error()
		}

	case clickDoneMsg:
		if msg.err != nil {
			m.status = "click: " + msg.err.Error()
		}

	case draftIssuedMsg:
		if msg.err != nil {
			m.status = "edit: " + msg.err.Error()
		} else {
			cmds = append(cmds, m.editorView.SetDraft(msg.draft))
			m.activeTab = tabEditor
			m.status = "editing: " + msg.draft.Label
		}

	case savedDoneMsg:
		switch {
		case msg.err != nil:
			m.status = "save failed: " + msg.err.Error()
		case !msg.out.Handled:
			m.status = "save ignored: unknown draft"
		case msg.signing:
			m.editorView.Clear()
			m.activeTab = tabBrowse
			m.status = "quest signed and saved"
			cmds = append(cmds, m.openViewCmd())
		default:
			m.editorView.Rebind(msg.newArtifactID)
			m.status = "quest saved"
		}

	case questChangedMsg:
		if msg.err != nil {
			m.status = msg.action + ": " + msg.err.Error()
		} else {
			m.status = msg.action + " ok"
			cmds = append(cmds, m.openViewCmd())
		}

	case browseview.ClickMsg:
		cmds = append(cmds, m.clickCmd(msg.Slot))

	case editorview.SaveRequestedMsg:
		cmds = append(cmds, m.savedCmd(msg))

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the editor and list filters so typing stays free.
		if m.subViewTyping() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "e":
			if m.activeTab == tabBrowse {
				if questID, ok := m.browseView.SelectedQuestID(); ok {
					cmds = append(cmds, m.issueDraftCmd(questID))
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabBrowse:
		m.browseView, tabCmd = m.browseView.Update(msg)
	case tabBook:
		m.bookView, tabCmd = m.bookView.Update(msg)
	case tabEditor:
		m.editorView, tabCmd = m.editorView.Update(msg)
	case tabPlugins:
		m.pluginView, tabCmd = m.pluginView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabBrowse:
		return m.browseView.View()
	case tabBook:
		return m.bookView.View()
	case tabEditor:
		return m.editorView.View()
	case tabPlugins:
		return m.pluginView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "questbook  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Hot.Render("● "+m.user) + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selected, _ := m.browseView.SelectedQuestID()

	switch parts[0] {
	case "quest:create":
		if len(parts) < 2 {
			m.status = "usage: quest:create <name>"
			return m, nil
		}
		if !m.perms.Has(m.user, bookdomain.PermCreate) {
			m.status = "missing permission: " + bookdomain.PermCreate
			return m, nil
		}
		name := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.createQuestCmd(name)

	case "quest:delete":
		if selected == "" {
			m.status = "no quest selected"
			return m, nil
		}
		if !m.perms.Has(m.user, bookdomain.PermDelete) {
			m.status = "missing permission: " + bookdomain.PermDelete
			return m, nil
		}
		return m, m.deleteQuestCmd(selected)

	case "quest:set":
		if len(parts) < 3 {
			m.status = "usage: quest:set <field> <value>"
			return m, nil
		}
		if selected == "" {
			m.status = "no quest selected"
			return m, nil
		}
		if !m.perms.Has(m.user, bookdomain.PermEdit) {
			m.status = "missing permission: " + bookdomain.PermEdit
			return m, nil
		}
		value := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		return m, m.updateFieldCmd(selected, parts[1], value)

	case "quest:icon":
		if len(parts) < 2 {
			m.status = "usage: quest:icon <icon>"
			return m, nil
		}
		if selected == "" {
			m.status = "no quest selected"
			return m, nil
		}
		if !m.perms.Has(m.user, bookdomain.PermEdit) {
			m.status = "missing permission: " + bookdomain.PermEdit
			return m, nil
		}
		return m, m.setIconCmd(selected, parts[1])

	case "quest:reindex":
		return m, m.reindexCmd()

	case "edit:pages":
		if selected == "" {
			m.status = "no quest selected"
			return m, nil
		}
		return m, m.issueDraftCmd(selected)

	case "book:open":
		return m, m.openViewCmd()

	case "plugin:list", "plugin:doctor":
		m.activeTab = tabPlugins
		m.status = "switched to Plugins tab"
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewTyping reports whether the active tab is consuming free-form typing,
// in which case global key bindings must yield.
func (m Model) subViewTyping() bool {
	switch m.activeTab {
	case tabEditor:
		return m.editorView.Editing()
	case tabPlugins:
		return m.pluginView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.browseView, _ = m.browseView.Update(sz)
	m.bookView, _ = m.bookView.Update(sz)
	m.editorView, _ = m.editorView.Update(sz)
	m.pluginView, _ = m.pluginView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) openViewCmd() tea.Cmd {
	return func() tea.Msg {
		// The presenter delivers the view; only failures surface here.
		_, err := m.book.Open(context.Background(), m.user)
		return viewOpenErrMsg{err: err}
	}
}

func (m Model) clickCmd(slot bookdomain.Slot) tea.Cmd {
	viewID, _ := m.browseView.ViewID()
	input := bookdto.ClickInput{
		User:   m.user,
		ViewID: viewID,
		Icon:   slot.Artifact.Icon,
		Label:  slot.Artifact.Label,
		Lore:   slot.Artifact.Lore,
	}
	return func() tea.Msg {
		out, err := m.book.Click(context.Background(), input)
		return clickDoneMsg{out: out, err: err}
	}
}

func (m Model) issueDraftCmd(questID string) tea.Cmd {
	return func() tea.Msg {
		draft, err := m.edit.Issue(context.Background(), m.user, questID)
		return draftIssuedMsg{draft: draft, err: err}
	}
}

func (m Model) savedCmd(req editorview.SaveRequestedMsg) tea.Cmd {
	// Saving hands back a re-identified artifact, exactly like the host
	// replacing the book item on save.
	newArtifactID := m.ids.New("draft")
	m.inventory.Rekey(m.user, req.Draft.ArtifactID, newArtifactID, req.Pages)
	pages := make([]editdto.PageInput, len(req.Pages))
	for i, text := range req.Pages {
		pages[i] = editdto.PageInput{Kind: "text", Text: text}
	}
	input := editdto.SavedInput{
		User:          m.user,
		OldArtifactID: req.Draft.ArtifactID,
		NewArtifactID: newArtifactID,
		Pages:         pages,
		Signing:       req.Signing,
	}
	return func() tea.Msg {
		out, err := m.edit.Saved(context.Background(), input)
		return savedDoneMsg{newArtifactID: newArtifactID, signing: req.Signing, out: out, err: err}
	}
}

func (m Model) createQuestCmd(name string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.quest.Create(context.Background(), name, m.user, "")
		return questChangedMsg{action: "create", err: err}
	}
}

func (m Model) deleteQuestCmd(id string) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.quest.Delete(context.Background(), id)
		if err == nil && !removed {
			return questChangedMsg{action: "delete", err: nil}
		}
		return questChangedMsg{action: "delete", err: err}
	}
}

func (m Model) updateFieldCmd(id, field, value string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.quest.UpdateField(context.Background(), id, field, value)
		return questChangedMsg{action: "set " + field, err: err}
	}
}

func (m Model) setIconCmd(id, icon string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.quest.SetIcon(context.Background(), id, icon)
		return questChangedMsg{action: "icon", err: err}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.quest.Reindex(context.Background())
		return questChangedMsg{action: "reindex", err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package plugins

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	placeholderdto "questbook/internal/modules/placeholder/dto"
	"questbook/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the placeholder use-case.
type Port interface {
	List(ctx context.Context) ([]placeholderdto.PluginInfo, error)
	Doctor(ctx context.Context) ([]placeholderdto.DoctorResult, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// PluginsLoadedMsg is sent when the manifest listing finishes loading.
type PluginsLoadedMsg struct {
	Plugins []placeholderdto.PluginInfo
	Err     error
}

// DoctorDoneMsg is sent when a doctor run finishes.
type DoctorDoneMsg struct {
	Results []placeholderdto.DoctorResult
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type pluginItem struct{ info placeholderdto.PluginInfo }

func (i pluginItem) Title() string { return i.info.Name + " " + i.info.Version }
func (i pluginItem) Description() string {
	state := "disabled"
	if i.info.Enabled {
		state = "enabled"
	}
	return state + "  [" + strings.Join(i.info.Capabilities, ",") + "]"
}
func (i pluginItem) FilterValue() string { return i.info.Name }

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the self-contained Bubble Tea model for the Plugins tab.
type Model struct {
	port    Port
	list    list.Model
	output  viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Placeholder Plugins"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		output:  vp,
		spinner: sp,
		loading: port != nil,
	}
}

// Filtering reports whether the plugin list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return tea.Batch(m.loadPluginsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case PluginsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.output.SetContent(theme.Hot.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		items := make([]list.Item, len(msg.Plugins))
		for i, p := range msg.Plugins {
			items[i] = pluginItem{info: p}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.output.SetContent(theme.Muted.Render("d: doctor  r: reload"))

	case DoctorDoneMsg:
		m.loading = false
		if msg.Err != nil {
			m.output.SetContent(theme.Hot.Render("Doctor error: " + msg.Err.Error()))
		} else {
			m.output.SetContent(m.renderDoctor(msg.Results))
		}
		m.output.GotoTop()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "d":
			if m.port != nil {
				m.loading = true
				cmds = append(cmds, m.doctorCmd(), m.spinner.Tick)
			}
			return m, tea.Batch(cmds...)
		case "r":
			if m.port != nil {
				m.loading = true
				cmds = append(cmds, m.loadPluginsCmd(), m.spinner.Tick)
			}
			return m, tea.Batch(cmds...)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)

		var vCmd tea.Cmd
		m.output, vCmd = m.output.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Working…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Surface1).
		Background(theme.Mantle).Width(detailW - 2).Height(m.height - 2).
		Render(m.output.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.list.SetSize(m.width*4/10, m.height)
	m.output.Width = m.width - m.width*4/10 - 4
	m.output.Height = m.height - 4
}

func (m Model) renderDoctor(results []placeholderdto.DoctorResult) string {
	if len(results) == 0 {
		return theme.Muted.Render("No plugins registered.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Doctor") + "\n\n")
	for _, r := range results {
		mark := theme.Hot.Render("✗")
		if r.BinaryReachable && r.ChecksumValid && r.Error == "" {
			mark = lipgloss.NewStyle().Foreground(theme.Green).Render("✓")
		}
		sb.WriteString(mark + " " + r.Name + "\n")
		sb.WriteString(theme.Muted.Render("  binary:   ") + yesNo(r.BinaryReachable) + "\n")
		sb.WriteString(theme.Muted.Render("  checksum: ") + yesNo(r.ChecksumValid) + "\n")
		sb.WriteString(theme.Muted.Render("  lifecycle:") + " " + yesNo(r.LifecycleOK) + "\n")
		if r.Error != "" {
			sb.WriteString(theme.Hot.Render("  "+r.Error) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func yesNo(ok bool) string {
	if ok {
		return "ok"
	}
	return "fail"
}

func (m Model) loadPluginsCmd() tea.Cmd {
	return func() tea.Msg {
		plugins, err := m.port.List(context.Background())
		return PluginsLoadedMsg{Plugins: plugins, Err: err}
	}
}

func (m Model) doctorCmd() tea.Cmd {
	return func() tea.Msg {
		results, err := m.port.Doctor(context.Background())
		return DoctorDoneMsg{Results: results, Err: err}
	}
}

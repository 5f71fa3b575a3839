// Package app is the diary's terminal UI: a root Bubble Tea model that owns
// the router and exactly one active panel.
package app

import (
	"strings"

	"achievediary/cmd/diary/ui"
	"achievediary/internal/logging"
	"achievediary/internal/router"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// panelModel is one screen. Panels are rebuilt on every activation.
type panelModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (panelModel, tea.Cmd)
	View() string
	Title() string
	Bindings() []key.Binding
	// Capturing reports whether the panel wants every key, including the
	// ones the root model normally handles.
	Capturing() bool
}

// Model is the root of the UI.
type Model struct {
	deps    Deps
	styles  ui.Styles
	router  *router.Router
	active  panelModel
	panelID uint64

	keys     keyMap
	help     help.Model
	showHelp bool

	width    int
	height   int
	quitting bool
}

// New builds the root model starting at path.
func New(deps Deps, start string) Model {
	m := Model{
		deps:   deps,
		styles: deps.Styles,
		router: router.New(start),
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  ui.MinimumTerminalWidth,
		height: 24,
	}
	m.active = m.build(m.router.Current())
	m.panelID = 1
	return m
}

// Init starts the first panel.
func (m Model) Init() tea.Cmd {
	return scope(m.panelID, m.active.Init())
}

// Location returns the router's current location.
func (m Model) Location() router.Location {
	return m.router.Current()
}

func (m Model) build(loc router.Location) panelModel {
	layout := ui.NewLayoutConfig(m.width, m.height)
	switch loc.Panel {
	case router.Create:
		return newCreatePanel(m.deps, layout)
	case router.Achievement:
		return newAchievementPanel(m.deps, layout, loc.Param("id"))
	case router.Achievements:
		return newAchievementsPanel(m.deps, layout)
	case router.Awards:
		return newAwardsPanel(m.deps, layout)
	default:
		return newHomePanel(m.deps, layout)
	}
}

// activate replaces the active panel with a fresh one for loc.
func (m Model) activate(loc router.Location) (Model, tea.Cmd) {
	m.panelID++
	m.active = m.build(loc)
	logging.Panel("activate %s (instance %d)", loc.Panel, m.panelID)
	return m, scope(m.panelID, m.active.Init())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.active.Capturing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Back):
				return m, back()
			case key.Matches(msg, m.keys.Help):
				m.showHelp = !m.showHelp
				return m, nil
			}
		}
		return m.forward(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m.forward(msg)

	case navigateMsg:
		return m.navigate(msg)

	case scopedMsg:
		if msg.panel != m.panelID {
			logging.PanelDebug("dropping %T for inactive panel instance %d (active %d)", msg.msg, msg.panel, m.panelID)
			return m, nil
		}
		return m.Update(msg.msg)
	}

	return m.forward(msg)
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, scope(m.panelID, cmd)
}

func (m Model) navigate(msg navigateMsg) (tea.Model, tea.Cmd) {
	var loc router.Location
	switch msg.op {
	case navBack:
		prev, ok := m.router.Back()
		if !ok {
			return m, nil
		}
		loc = prev
	case navReplace:
		loc = m.router.Replace(msg.path)
	default:
		loc = m.router.Push(msg.path)
	}
	return m.activate(loc)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	layout := ui.NewLayoutConfig(m.width, m.height)

	title := "Achievements diary · " + m.active.Title()
	user := m.deps.Identity.DisplayName()
	header := m.styles.Header.Render(title)
	if user != "" {
		gap := layout.TerminalWidth - lipgloss.Width(header) - lipgloss.Width(user) - 2
		if gap > 0 {
			header += strings.Repeat(" ", gap) + m.styles.Muted.Render(user)
		}
	}

	content := m.styles.Content.Render(m.active.View())

	bindings := append([]key.Binding{}, m.active.Bindings()...)
	bindings = append(bindings, m.keys.Back, m.keys.Help, m.keys.Quit)
	var footer string
	if m.showHelp {
		footer = m.help.FullHelpView([][]key.Binding{bindings})
	} else {
		footer = m.help.ShortHelpView(bindings)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		content,
		m.styles.Footer.Render(footer),
	)
}

package app

import (
	"fmt"
	"strings"

	"achievediary/cmd/diary/ui"
	"achievediary/internal/api"
	"achievediary/internal/logging"
	"achievediary/internal/panel"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	label string
	path  string
	key   key.Binding
}

var homeMenu = []menuItem{
	{label: "Add an achievement", path: "/create", key: keyCreate},
	{label: "My achievements", path: "/achievements", key: keyList},
	{label: "Awards and progress", path: "/awards", key: keyAwards},
}

const homeIntro = `Keep track of the things you are proud of.
Record **study**, **sport**, **travel** and more, then watch your level grow.`

// homePanel shows the identity card and the main menu. It registers the
// user with the backend in the background; failure never blocks the menu.
type homePanel struct {
	deps     Deps
	layout   ui.LayoutConfig
	register *panel.Loader[struct{}]
	spinner  spinner.Model
	md       *ui.Markdown
	cursor   int
}

func newHomePanel(deps Deps, layout ui.LayoutConfig) panelModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	p := homePanel{
		deps:     deps,
		layout:   layout,
		register: panel.NewLoader[struct{}]("home", nil),
		spinner:  sp,
	}
	if deps.Markdown {
		p.md = ui.NewMarkdown(layout.ContentWidth(), deps.Styles.Theme.IsDark)
	}
	return p
}

func (p homePanel) Title() string { return "Home" }

func (p homePanel) Capturing() bool { return false }

func (p homePanel) Bindings() []key.Binding {
	return []key.Binding{keyUp, keyDown, keyOpen, keyCreate, keyList, keyAwards}
}

func (p homePanel) Init() tea.Cmd {
	if p.deps.Identity == nil {
		logging.PanelDebug("home: no identity, skipping registration")
		return nil
	}
	gen := p.register.Begin()
	return tea.Batch(p.spinner.Tick, registerUser(p.deps, gen))
}

func registerUser(deps Deps, gen uint64) tea.Cmd {
	id := *deps.Identity
	return func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()
		return registeredMsg{gen: gen, err: deps.Service.UpsertUser(ctx, &id)}
	}
}

func (p homePanel) Update(msg tea.Msg) (panelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registeredMsg:
		if p.register.Resolve(msg.gen, struct{}{}, msg.err) && msg.err != nil {
			logging.PanelError("home: user registration failed: %v", msg.err)
		}
		return p, nil

	case spinner.TickMsg:
		if !p.register.Loading() {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.WindowSizeMsg:
		p.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		if p.md != nil {
			p.md.Resize(p.layout.ContentWidth())
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyUp):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keyDown):
			if p.cursor < len(homeMenu)-1 {
				p.cursor++
			}
		case key.Matches(msg, keyOpen):
			return p, push(homeMenu[p.cursor].path)
		default:
			for _, item := range homeMenu {
				if key.Matches(msg, item.key) {
					return p, push(item.path)
				}
			}
		}
	}
	return p, nil
}

func (p homePanel) View() string {
	s := p.deps.Styles
	var sb strings.Builder

	card := p.identityCard()
	sb.WriteString(s.Card.Render(card))
	sb.WriteString("\n\n")

	if p.md != nil {
		sb.WriteString(p.md.Render(homeIntro))
	} else {
		sb.WriteString(s.Subtitle.Render("Keep track of the things you are proud of."))
	}
	sb.WriteString("\n\n")

	for i, item := range homeMenu {
		line := fmt.Sprintf("%s  %s", item.label, s.Muted.Render("("+item.key.Help().Key+")"))
		if i == p.cursor {
			sb.WriteString(s.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (p homePanel) identityCard() string {
	s := p.deps.Styles
	id := p.deps.Identity
	if id == nil {
		return s.Error.Render(panel.Message(api.MissingInput("user id")))
	}
	name := id.DisplayName()
	if name == "" {
		name = "User " + id.UserID()
	}
	line := s.Bold.Render(name) + "\n" + s.Muted.Render(id.CityOrDefault())
	if p.register.Loading() {
		line += "\n" + p.spinner.View() + s.Muted.Render(" syncing profile…")
	}
	return line
}

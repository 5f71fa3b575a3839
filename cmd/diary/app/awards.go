package app

import (
	"fmt"
	"strings"

	"achievediary/cmd/diary/ui"
	"achievediary/internal/achievement"
	"achievediary/internal/api"
	"achievediary/internal/panel"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// awardsPanel shows level, stats and earned awards.
type awardsPanel struct {
	deps     Deps
	layout   ui.LayoutConfig
	progress *panel.Loader[*api.Progress]
	spinner  spinner.Model
}

func newAwardsPanel(deps Deps, layout ui.LayoutConfig) panelModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	return awardsPanel{
		deps:   deps,
		layout: layout,
		progress: panel.NewLoader[*api.Progress]("awards", func(p *api.Progress) bool {
			return p == nil || len(p.Awards) == 0
		}),
		spinner: sp,
	}
}

func (p awardsPanel) Title() string { return "Awards" }

func (p awardsPanel) Capturing() bool { return false }

func (p awardsPanel) Bindings() []key.Binding {
	switch {
	case p.progress.State() == panel.Error && p.deps.Identity != nil:
		return []key.Binding{keyRetry}
	case p.progress.Empty():
		return []key.Binding{keyCreate}
	}
	return nil
}

func (p awardsPanel) Init() tea.Cmd {
	return p.fetch()
}

func (p awardsPanel) fetch() tea.Cmd {
	if p.deps.Identity == nil {
		p.progress.Fail(api.MissingInput("user id"))
		return nil
	}
	gen := p.progress.Begin()
	deps := p.deps
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()
		prog, err := api.LoadProgress(ctx, deps.Service, deps.userID())
		return progressMsg{gen: gen, p: prog, err: err}
	})
}

func (p awardsPanel) Update(msg tea.Msg) (panelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		p.progress.Resolve(msg.gen, msg.p, msg.err)
		return p, nil

	case spinner.TickMsg:
		if !p.progress.Loading() {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.WindowSizeMsg:
		p.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyRetry):
			if p.progress.State() == panel.Error && p.deps.Identity != nil {
				return p, p.fetch()
			}
		case key.Matches(msg, keyCreate):
			if p.progress.Empty() {
				return p, push("/create")
			}
		}
	}
	return p, nil
}

// progressError picks the awards panel's error text: a missing identity is
// reported as such, anything else as a connectivity problem.
func progressError(err error) string {
	if kind, ok := api.KindOf(err); ok && kind == api.KindMissingInput {
		return panel.Message(err)
	}
	return panel.MsgLoadProgress
}

func (p awardsPanel) View() string {
	s := p.deps.Styles
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Your progress"))
	sb.WriteString("\n")

	switch p.progress.State() {
	case panel.Idle, panel.Loading:
		sb.WriteString(p.spinner.View() + s.Muted.Render(" Loading progress…"))
		return sb.String()
	case panel.Error:
		sb.WriteString(s.Error.Render(progressError(p.progress.Err())))
		return sb.String()
	}

	prog := p.progress.Data()
	sb.WriteString(levelBar(s, prog.Level, p.layout.ContentWidth()))
	sb.WriteString("\n\n")

	most := "-"
	if prog.Stats.MostActiveCategory != "" {
		most = prog.Stats.MostActiveCategory.Label()
	}
	stats := ui.NewSimpleTable("", []string{"Achievements", "Most active", "Awards"})
	stats.AddRow(
		fmt.Sprintf("%d", prog.Stats.AchievementsCount),
		most,
		fmt.Sprintf("%d", prog.Stats.AwardsCount),
	)
	sb.WriteString(stats.View(s))
	sb.WriteString("\n")

	if p.progress.Empty() {
		sb.WriteString(s.Subtitle.Render("No awards yet. Add achievements to earn your first one."))
		sb.WriteString("\n\n" + s.Muted.Render("Press c to add an achievement"))
		return sb.String()
	}

	awards := ui.NewSimpleTable("Awards", []string{"Award", "Category", "Date"})
	for _, a := range prog.Awards {
		awards.AddRow(a.Title, a.Category.Label(), achievement.DisplayDate(a.Date))
	}
	sb.WriteString(awards.View(s))
	return sb.String()
}

// levelBar renders "Level n/10" with a progress bar.
func levelBar(s ui.Styles, level, width int) string {
	level = api.ClampLevel(level)
	cells := api.MaxLevel * 2
	if width > 0 && cells > width-20 && width > 30 {
		cells = width - 20
	}
	filled := cells * level / api.MaxLevel
	bar := s.Focused.Render(strings.Repeat("█", filled)) + s.Disabled.Render(strings.Repeat("░", cells-filled))
	return s.Bold.Render(fmt.Sprintf("Level %d/%d ", level, api.MaxLevel)) + bar
}

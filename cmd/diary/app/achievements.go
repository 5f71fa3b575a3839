package app

import (
	"fmt"
	"strconv"
	"strings"

	"achievediary/cmd/diary/ui"
	"achievediary/internal/achievement"
	"achievediary/internal/api"
	"achievediary/internal/logging"
	"achievediary/internal/panel"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// achievementsPanel is the paged, filterable list.
type achievementsPanel struct {
	deps    Deps
	layout  ui.LayoutConfig
	list    *panel.Loader[*api.Page]
	filter  int // index into achievement.FilterOptions()
	page    int
	cursor  int
	spinner spinner.Model
}

func newAchievementsPanel(deps Deps, layout ui.LayoutConfig) panelModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	return achievementsPanel{
		deps:    deps,
		layout:  layout,
		list:    panel.NewLoader[*api.Page]("achievements", (*api.Page).Empty),
		spinner: sp,
	}
}

func (p achievementsPanel) Title() string { return "My achievements" }

func (p achievementsPanel) Capturing() bool { return false }

func (p achievementsPanel) Bindings() []key.Binding {
	b := []key.Binding{keyUp, keyDown, keyOpen, keyNextFilter, keyPrevFilter}
	pg := p.pager()
	if !pg.NextDisabled() {
		b = append(b, keyNextPage)
	}
	if !pg.PrevDisabled() {
		b = append(b, keyPrevPage)
	}
	if p.list.State() == panel.Error && panel.Retryable(p.list.Err()) {
		b = append(b, keyRetry)
	}
	return append(b, keyCreate)
}

// Filter returns the active filter value.
func (p achievementsPanel) Filter() string {
	return achievement.FilterOptions()[p.filter]
}

func (p achievementsPanel) pager() panel.Pager {
	pg := panel.Pager{Page: p.page}
	if page := p.list.Data(); page != nil {
		pg.TotalPages = page.TotalPages
	}
	return pg
}

func (p achievementsPanel) Init() tea.Cmd {
	return p.fetch()
}

// fetch loads the current filter and page. Without an identity the panel
// fails immediately and nothing is sent.
func (p achievementsPanel) fetch() tea.Cmd {
	if p.deps.Identity == nil {
		p.list.Fail(api.MissingInput("user id"))
		return nil
	}
	gen := p.list.Begin()
	deps := p.deps
	q := api.ListQuery{
		UserID:   deps.userID(),
		Category: p.Filter(),
		Page:     p.page,
		Size:     deps.pageSize(),
	}
	logging.PanelDebug("achievements: fetch gen=%d filter=%s page=%d", gen, q.Category, q.Page)
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()
		page, err := deps.Service.ListAchievements(ctx, q)
		return pageMsg{gen: gen, page: page, err: err}
	})
}

func (p achievementsPanel) Update(msg tea.Msg) (panelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case pageMsg:
		if p.list.Resolve(msg.gen, msg.page, msg.err) && msg.err == nil {
			p.cursor = 0
		}
		return p, nil

	case spinner.TickMsg:
		if !p.list.Loading() {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.WindowSizeMsg:
		p.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p achievementsPanel) handleKey(msg tea.KeyMsg) (panelModel, tea.Cmd) {
	items := p.items()
	switch {
	case key.Matches(msg, keyUp):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keyDown):
		if p.cursor < len(items)-1 {
			p.cursor++
		}
	case key.Matches(msg, keyOpen):
		if p.cursor < len(items) {
			return p, push("/achievement/" + strconv.FormatInt(items[p.cursor].ID, 10))
		}
	case key.Matches(msg, keyNextFilter):
		return p.setFilter(p.filter + 1)
	case key.Matches(msg, keyPrevFilter):
		return p.setFilter(p.filter - 1)
	case key.Matches(msg, keyNextPage):
		if pg := p.pager(); !pg.NextDisabled() {
			p.page = pg.Next()
			return p, p.fetch()
		}
	case key.Matches(msg, keyPrevPage):
		if pg := p.pager(); !pg.PrevDisabled() {
			p.page = pg.Prev()
			return p, p.fetch()
		}
	case key.Matches(msg, keyRetry):
		if p.list.State() == panel.Error && panel.Retryable(p.list.Err()) {
			return p, p.fetch()
		}
	case key.Matches(msg, keyCreate):
		return p, push("/create")
	}
	return p, nil
}

// setFilter switches the category filter. The page always resets to the
// first one.
func (p achievementsPanel) setFilter(idx int) (panelModel, tea.Cmd) {
	n := len(achievement.FilterOptions())
	p.filter = (idx%n + n) % n
	p.page = 0
	p.cursor = 0
	return p, p.fetch()
}

func (p achievementsPanel) items() []achievement.Achievement {
	if page := p.list.Data(); page != nil && p.list.State() == panel.Success {
		return page.Content
	}
	return nil
}

func (p achievementsPanel) View() string {
	s := p.deps.Styles
	var sb strings.Builder

	sb.WriteString(s.Title.Render("My achievements"))
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render("Category: ") + s.Selected.Render("‹ "+achievement.FilterLabel(p.Filter())+" ›"))
	sb.WriteString("\n\n")

	switch {
	case p.list.State() == panel.Idle || p.list.Loading():
		sb.WriteString(p.spinner.View() + s.Muted.Render(" Loading achievements…"))
		return sb.String()
	case p.list.State() == panel.Error:
		sb.WriteString(s.Error.Render(panel.Message(p.list.Err())))
		if panel.Retryable(p.list.Err()) {
			sb.WriteString("\n\n" + s.Muted.Render("Press r to try again"))
		}
		return sb.String()
	case p.list.Empty():
		sb.WriteString(s.Subtitle.Render(emptyListText(p.Filter())))
		sb.WriteString("\n\n" + s.Muted.Render("Press c to add one"))
		return sb.String()
	}

	tbl := ui.NewSimpleTable("", []string{"Title", "Category", "Date"})
	tbl.MaxWidth = []int{p.layout.TitleWidth()}
	for _, a := range p.items() {
		tbl.AddRow(a.Title, a.Category.Label(), achievement.DisplayDate(a.Date))
	}
	tbl.Selected = p.cursor
	sb.WriteString(tbl.View(s))
	sb.WriteString("\n")

	pg := p.pager()
	total := p.list.Data().TotalElements
	sb.WriteString(s.RenderButton("Prev", pg.PrevDisabled()))
	sb.WriteString("  " + s.Muted.Render(fmt.Sprintf("%s · %d total", pg.Label(), total)) + "  ")
	sb.WriteString(s.RenderButton("Next", pg.NextDisabled()))
	return sb.String()
}

// emptyListText is the empty-state message for a filter.
func emptyListText(filter string) string {
	if filter == "" || filter == achievement.FilterAll {
		return "You have no achievements yet"
	}
	return fmt.Sprintf("No achievements in %q yet", achievement.FilterLabel(filter))
}

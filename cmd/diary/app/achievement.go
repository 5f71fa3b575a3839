package app

import (
	"errors"
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

var errBadID = errors.New(panel.MsgBadID)

// achievementPanel shows one record and lets the user edit or delete it.
type achievementPanel struct {
	deps   Deps
	layout ui.LayoutConfig
	id     int64

	load   *panel.Loader[*achievement.Achievement]
	action *panel.Loader[struct{}] // save or delete in flight

	form      achievement.Form
	view      formView
	editing   bool
	confirm   bool
	actionErr string

	md      *ui.Markdown
	spinner spinner.Model
}

func newAchievementPanel(deps Deps, layout ui.LayoutConfig, rawID string) panelModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	p := achievementPanel{
		deps:    deps,
		layout:  layout,
		load:    panel.NewLoader[*achievement.Achievement]("achievement", nil),
		action:  panel.NewLoader[struct{}]("achievement-action", nil),
		spinner: sp,
	}
	if deps.Markdown {
		p.md = ui.NewMarkdown(layout.ContentWidth(), deps.Styles.Theme.IsDark)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	switch {
	case err != nil || id <= 0:
		p.load.Fail(errBadID)
	case deps.Identity == nil:
		p.load.Fail(api.MissingInput("user id"))
	default:
		p.id = id
	}
	return p
}

func (p achievementPanel) Title() string {
	if p.editing {
		return "Edit achievement"
	}
	return "Achievement"
}

func (p achievementPanel) Capturing() bool { return p.editing || p.confirm }

func (p achievementPanel) Bindings() []key.Binding {
	switch {
	case p.editing:
		return []key.Binding{keyNextField, keyPrevField, keySubmit, keyCancel}
	case p.confirm:
		return []key.Binding{keyConfirm, keyCancel}
	case p.canRetry():
		return []key.Binding{keyRetry}
	case p.load.State() == panel.Error:
		return nil
	default:
		return []key.Binding{keyEdit, keyDelete}
	}
}

// canRetry reports whether the failed load can be re-issued in place.
func (p achievementPanel) canRetry() bool {
	return p.load.State() == panel.Error && p.id > 0 && panel.Retryable(p.load.Err())
}

func (p achievementPanel) Init() tea.Cmd {
	if p.id <= 0 {
		return nil
	}
	return p.fetch()
}

func (p achievementPanel) fetch() tea.Cmd {
	gen := p.load.Begin()
	deps, id, userID := p.deps, p.id, p.deps.userID()
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()
		a, err := deps.Service.GetAchievement(ctx, id, userID)
		return loadedMsg{gen: gen, a: a, err: err}
	})
}

func (p achievementPanel) Update(msg tea.Msg) (panelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if p.load.Resolve(msg.gen, msg.a, msg.err) && msg.err == nil {
			p.form = achievement.FormFor(*msg.a)
		}
		return p, nil

	case savedMsg:
		if !p.action.Resolve(msg.gen, struct{}{}, msg.err) {
			return p, nil
		}
		if msg.err != nil {
			p.actionErr = panel.SubmitMessage(msg.err)
			return p, nil
		}
		logging.Panel("achievement %d: saved", p.id)
		return p, replace("/achievements")

	case deletedMsg:
		if !p.action.Resolve(msg.gen, struct{}{}, msg.err) {
			return p, nil
		}
		if msg.err != nil {
			p.actionErr = panel.Message(msg.err)
			return p, nil
		}
		logging.Panel("achievement %d: deleted", p.id)
		return p, replace("/achievements")

	case spinner.TickMsg:
		if !p.load.Loading() && !p.action.Loading() {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.WindowSizeMsg:
		p.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		p.view.setWidth(p.layout.ContentWidth())
		if p.md != nil {
			p.md.Resize(p.layout.ContentWidth())
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.editing {
		var cmd tea.Cmd
		p.view, cmd, _ = p.view.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p achievementPanel) handleKey(msg tea.KeyMsg) (panelModel, tea.Cmd) {
	if p.action.Loading() {
		return p, nil
	}

	switch {
	case p.editing:
		if msg.String() == "esc" {
			p.editing = false
			p.form.Err = nil
			p.actionErr = ""
			return p, nil
		}
		var (
			cmd       tea.Cmd
			submitted bool
		)
		p.view, cmd, submitted = p.view.Update(msg)
		if submitted {
			return p.save()
		}
		return p, cmd

	case p.confirm:
		switch {
		case key.Matches(msg, keyConfirm):
			p.confirm = false
			return p.remove()
		case key.Matches(msg, keyCancel):
			p.confirm = false
		}
		return p, nil
	}

	switch {
	case key.Matches(msg, keyRetry):
		if p.canRetry() {
			return p, p.fetch()
		}
	case key.Matches(msg, keyEdit):
		if p.load.State() == panel.Success {
			p.editing = true
			p.actionErr = ""
			p.view = newFormView(p.form.Fields, "Save changes")
			p.view.setWidth(p.layout.ContentWidth())
		}
	case key.Matches(msg, keyDelete):
		if p.load.State() == panel.Success {
			p.confirm = true
			p.actionErr = ""
		}
	}
	return p, nil
}

func (p achievementPanel) save() (panelModel, tea.Cmd) {
	p.form.Fields = p.view.fields()
	p.actionErr = ""
	fields, ok := p.form.Submit(p.deps.userID(), p.deps.now())
	if !ok {
		return p, nil
	}

	gen := p.action.Begin()
	deps, id, userID := p.deps, p.id, p.deps.userID()
	return p, tea.Batch(p.spinner.Tick, func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()
		_, err := deps.Service.UpdateAchievement(ctx, id, userID, fields)
		return savedMsg{gen: gen, err: err}
	})
}

func (p achievementPanel) remove() (panelModel, tea.Cmd) {
	gen := p.action.Begin()
	deps, id, userID := p.deps, p.id, p.deps.userID()
	return p, tea.Batch(p.spinner.Tick, func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()
		return deletedMsg{gen: gen, err: deps.Service.DeleteAchievement(ctx, id, userID)}
	})
}

func (p achievementPanel) View() string {
	s := p.deps.Styles

	switch p.load.State() {
	case panel.Idle, panel.Loading:
		return p.spinner.View() + s.Muted.Render(" Loading achievement…")
	case panel.Error:
		out := s.Error.Render(panel.Message(p.load.Err()))
		if p.canRetry() {
			out += "\n\n" + s.Muted.Render("Press r to try again")
		}
		return out
	}

	if p.editing {
		errMsg := p.form.Message()
		if errMsg == "" {
			errMsg = p.actionErr
		}
		return s.Title.Render("Edit achievement") + "\n" + p.view.View(s, errMsg, p.action.Loading())
	}

	a := p.load.Data()
	var sb strings.Builder
	sb.WriteString(s.Title.Render(a.Title))
	sb.WriteString("\n")
	sb.WriteString(s.CategoryBadge(a.Category) + "  " + s.Muted.Render(achievement.DisplayDate(a.Date)))
	sb.WriteString("\n")
	sb.WriteString(s.RenderDivider(p.layout.ContentWidth()))
	sb.WriteString("\n")
	if p.md != nil {
		sb.WriteString(p.md.Render(a.Description))
	} else {
		sb.WriteString(s.Body.Render(a.Description))
	}
	sb.WriteString("\n\n")

	switch {
	case p.action.Loading():
		sb.WriteString(p.spinner.View() + s.Muted.Render(" Working…"))
	case p.confirm:
		sb.WriteString(s.Warning.Render("Delete this achievement? (y/n)"))
	case p.actionErr != "":
		sb.WriteString(s.Error.Render(p.actionErr))
	}
	return sb.String()
}

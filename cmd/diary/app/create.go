package app

import (
	"achievediary/cmd/diary/ui"
	"achievediary/internal/achievement"
	"achievediary/internal/logging"
	"achievediary/internal/panel"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// createPanel is the new-achievement form.
type createPanel struct {
	deps      Deps
	form      achievement.Form
	view      formView
	save      *panel.Loader[*achievement.Achievement]
	submitErr string
	spinner   spinner.Model
}

func newCreatePanel(deps Deps, layout ui.LayoutConfig) panelModel {
	form := achievement.NewForm(deps.now())
	view := newFormView(form.Fields, "Save achievement")
	view.setWidth(layout.ContentWidth())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Styles.Spinner

	return createPanel{
		deps:    deps,
		form:    form,
		view:    view,
		save:    panel.NewLoader[*achievement.Achievement]("create", nil),
		spinner: sp,
	}
}

func (p createPanel) Title() string { return "New achievement" }

func (p createPanel) Capturing() bool { return true }

func (p createPanel) Bindings() []key.Binding {
	return []key.Binding{keyNextField, keyPrevField, keySubmit, keyFormBack}
}

func (p createPanel) Init() tea.Cmd {
	return nil
}

func (p createPanel) Update(msg tea.Msg) (panelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		if !p.save.Resolve(msg.gen, msg.a, msg.err) {
			return p, nil
		}
		if msg.err != nil {
			p.submitErr = panel.SubmitMessage(msg.err)
			return p, nil
		}
		logging.Panel("create: saved achievement")
		return p, replace("/")

	case spinner.TickMsg:
		if !p.save.Loading() {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.WindowSizeMsg:
		p.view.setWidth(ui.NewLayoutConfig(msg.Width, msg.Height).ContentWidth())
		return p, nil

	case tea.KeyMsg:
		if key.Matches(msg, keyFormBack) {
			return p, back()
		}
		if p.save.Loading() {
			return p, nil
		}
		var (
			cmd       tea.Cmd
			submitted bool
		)
		p.view, cmd, submitted = p.view.Update(msg)
		if submitted {
			return p.submit()
		}
		return p, cmd
	}

	var cmd tea.Cmd
	p.view, cmd, _ = p.view.Update(msg)
	return p, cmd
}

func (p createPanel) submit() (panelModel, tea.Cmd) {
	p.form.Fields = p.view.fields()
	p.submitErr = ""
	fields, ok := p.form.Submit(p.deps.userID(), p.deps.now())
	if !ok {
		logging.PanelDebug("create: rejected by %s rule", p.form.Err.Field)
		return p, nil
	}

	gen := p.save.Begin()
	deps := p.deps
	userID := deps.userID()
	return p, tea.Batch(p.spinner.Tick, func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()
		a, err := deps.Service.CreateAchievement(ctx, userID, fields)
		return createdMsg{gen: gen, a: a, err: err}
	})
}

func (p createPanel) View() string {
	s := p.deps.Styles
	errMsg := p.form.Message()
	if errMsg == "" {
		errMsg = p.submitErr
	}
	out := s.Title.Render("Add an achievement") + "\n"
	out += p.view.View(s, errMsg, p.save.Loading())
	if p.save.Loading() {
		out += " " + p.spinner.View()
	}
	return out
}

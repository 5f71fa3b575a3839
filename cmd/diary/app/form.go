package app

import (
	"strings"

	"achievediary/cmd/diary/ui"
	"achievediary/internal/achievement"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField int

const (
	fieldTitle formField = iota
	fieldCategory
	fieldDate
	fieldDescription
	fieldSubmit
	fieldCount
)

// formView is the input widget shared by the create and edit panels.
type formView struct {
	title    textinput.Model
	date     textinput.Model
	desc     textarea.Model
	category int // index into achievement.Categories, -1 when unset
	focus    formField
	submit   string
	width    int
}

func newFormView(f achievement.Fields, submit string) formView {
	title := textinput.New()
	title.Placeholder = "What did you achieve?"
	title.CharLimit = 200
	title.SetValue(f.Title)

	date := textinput.New()
	date.Placeholder = achievement.DateLayout
	date.CharLimit = len(achievement.DateLayout)
	date.SetValue(f.Date)

	desc := textarea.New()
	desc.Placeholder = "Tell the story (Markdown welcome)"
	desc.ShowLineNumbers = false
	desc.SetHeight(5)
	desc.SetValue(f.Description)

	fv := formView{
		title:    title,
		date:     date,
		desc:     desc,
		category: -1,
		submit:   submit,
	}
	for i, c := range achievement.Categories {
		if c == f.Category {
			fv.category = i
			break
		}
	}
	fv.setFocus(fieldTitle)
	return fv
}

// fields returns what the user has entered, untrimmed.
func (f formView) fields() achievement.Fields {
	out := achievement.Fields{
		Title:       f.title.Value(),
		Date:        f.date.Value(),
		Description: f.desc.Value(),
	}
	if f.category >= 0 && f.category < len(achievement.Categories) {
		out.Category = achievement.Categories[f.category]
	}
	return out
}

func (f *formView) setWidth(w int) {
	f.width = w
	inner := w - ui.ContentPaddingH - 16
	if inner < 20 {
		inner = 20
	}
	f.title.Width = inner
	f.date.Width = len(achievement.DateLayout) + 1
	f.desc.SetWidth(inner)
}

func (f *formView) setFocus(target formField) {
	f.title.Blur()
	f.date.Blur()
	f.desc.Blur()
	f.focus = target
	switch target {
	case fieldTitle:
		f.title.Focus()
	case fieldDate:
		f.date.Focus()
	case fieldDescription:
		f.desc.Focus()
	}
}

// typing reports whether keystrokes go into a text field.
func (f formView) typing() bool {
	return f.focus == fieldTitle || f.focus == fieldDate || f.focus == fieldDescription
}

// Update routes a key to the focused field. submitted is true when the user
// asked to save.
func (f formView) Update(msg tea.Msg) (formView, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, keySubmit):
		return f, nil, true
	case key.Matches(keyMsg, keyNextField):
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil, false
	case key.Matches(keyMsg, keyPrevField):
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return f, nil, false
	}

	switch f.focus {
	case fieldCategory:
		switch keyMsg.String() {
		case "left", "h":
			f.cycleCategory(-1)
		case "right", "l", " ":
			f.cycleCategory(1)
		case "enter", "down":
			f.setFocus(fieldDate)
		case "up":
			f.setFocus(fieldTitle)
		}
		return f, nil, false
	case fieldSubmit:
		switch keyMsg.String() {
		case "enter":
			return f, nil, true
		case "up":
			f.setFocus(fieldDescription)
		}
		return f, nil, false
	case fieldTitle, fieldDate:
		switch keyMsg.String() {
		case "enter", "down":
			f.setFocus(f.focus + 1)
			return f, nil, false
		case "up":
			if f.focus > fieldTitle {
				f.setFocus(f.focus - 1)
			}
			return f, nil, false
		}
	}
	return f.updateFocused(msg)
}

func (f formView) updateFocused(msg tea.Msg) (formView, tea.Cmd, bool) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	}
	return f, cmd, false
}

func (f *formView) cycleCategory(step int) {
	n := len(achievement.Categories)
	if f.category < 0 {
		if step > 0 {
			f.category = 0
		} else {
			f.category = n - 1
		}
		return
	}
	f.category = (f.category + step + n) % n
}

// View renders the form with errMsg above the submit button.
func (f formView) View(s ui.Styles, errMsg string, busy bool) string {
	var sb strings.Builder

	label := func(name string, field formField) string {
		if f.focus == field {
			return s.Focused.Width(14).Render(name)
		}
		return s.Label.Render(name)
	}

	sb.WriteString(label("Title", fieldTitle) + f.title.View() + "\n\n")

	catText := s.Muted.Render("Not selected")
	if f.category >= 0 {
		catText = s.CategoryBadge(achievement.Categories[f.category])
	}
	if f.focus == fieldCategory {
		catText = "‹ " + catText + " ›"
	}
	sb.WriteString(label("Category", fieldCategory) + catText + "\n\n")

	sb.WriteString(label("Date", fieldDate) + f.date.View() + "\n\n")
	sb.WriteString(label("Description", fieldDescription) + "\n" + f.desc.View() + "\n\n")

	if errMsg != "" {
		sb.WriteString(s.Error.Render(errMsg) + "\n\n")
	}

	btn := f.submit
	if busy {
		btn = "Saving…"
	}
	if f.focus == fieldSubmit {
		sb.WriteString(s.Button.Render(btn))
	} else {
		sb.WriteString(s.RenderButton(btn, busy))
	}
	return sb.String()
}

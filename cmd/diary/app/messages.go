package app

import (
	"context"
	"time"

	"achievediary/cmd/diary/ui"
	"achievediary/internal/achievement"
	"achievediary/internal/api"
	"achievediary/internal/identity"

	tea "github.com/charmbracelet/bubbletea"
)

// Deps is everything a panel needs from the outside world. Identity is nil
// when the session has no user.
type Deps struct {
	Service  api.Service
	Identity *identity.Identity
	PageSize int
	Timeout  time.Duration
	Styles   ui.Styles
	Markdown bool
	Now      func() time.Time
}

func (d Deps) userID() int64 {
	if d.Identity == nil {
		return 0
	}
	return d.Identity.ID
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) pageSize() int {
	if d.PageSize <= 0 {
		return api.DefaultPageSize
	}
	return d.PageSize
}

// requestContext bounds one backend call.
func (d Deps) requestContext() (context.Context, context.CancelFunc) {
	if d.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d.Timeout)
}

// =============================================================================
// NAVIGATION
// =============================================================================

type navOp int

const (
	navPush navOp = iota
	navReplace
	navBack
)

func (o navOp) String() string {
	switch o {
	case navReplace:
		return "replace"
	case navBack:
		return "back"
	default:
		return "push"
	}
}

type navigateMsg struct {
	op   navOp
	path string
}

func push(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{op: navPush, path: path} }
}

func replace(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{op: navReplace, path: path} }
}

func back() tea.Cmd {
	return func() tea.Msg { return navigateMsg{op: navBack} }
}

// =============================================================================
// PANEL SCOPING
// =============================================================================

// scopedMsg is a message produced by a command of panel instance id.
type scopedMsg struct {
	panel uint64
	msg   tea.Msg
}

// scope tags every message cmd produces with the panel instance that issued
// it, so results for a panel that is no longer active can be dropped.
func scope(id uint64, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		switch m := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			scoped := make(tea.BatchMsg, 0, len(m))
			for _, c := range m {
				if c != nil {
					scoped = append(scoped, scope(id, c))
				}
			}
			return scoped
		case tea.QuitMsg:
			return m
		}
		return scopedMsg{panel: id, msg: msg}
	}
}

// =============================================================================
// BACKEND RESULTS
// =============================================================================

type registeredMsg struct {
	gen uint64
	err error
}

type createdMsg struct {
	gen uint64
	a   *achievement.Achievement
	err error
}

type loadedMsg struct {
	gen uint64
	a   *achievement.Achievement
	err error
}

type savedMsg struct {
	gen uint64
	err error
}

type deletedMsg struct {
	gen uint64
	err error
}

type pageMsg struct {
	gen  uint64
	page *api.Page
	err  error
}

type progressMsg struct {
	gen uint64
	p   *api.Progress
	err error
}

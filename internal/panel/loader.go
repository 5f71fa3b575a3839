// Package panel holds the state machine shared by every diary panel: one
// fetch at a time, stale completions discarded by generation.
package panel

import (
	"achievediary/internal/logging"
)

// State is where a panel's load currently stands.
type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Loader tracks one panel's request lifecycle. It is owned by the UI event
// loop and is not safe for concurrent use.
type Loader[T any] struct {
	name  string
	state State
	gen   uint64
	data  T
	err   error
	empty func(T) bool
}

// NewLoader returns an idle loader. empty decides whether a successful
// payload is shown as the empty state; nil means never empty.
func NewLoader[T any](name string, empty func(T) bool) *Loader[T] {
	return &Loader[T]{name: name, empty: empty}
}

// Begin starts a fetch and returns its generation. Earlier generations
// become stale.
func (l *Loader[T]) Begin() uint64 {
	l.gen++
	l.state = Loading
	l.err = nil
	logging.PanelDebug("%s: begin gen=%d", l.name, l.gen)
	return l.gen
}

// Resolve applies the outcome of generation gen. Results from a superseded
// generation change nothing and report false.
func (l *Loader[T]) Resolve(gen uint64, data T, err error) bool {
	if gen != l.gen || l.state != Loading {
		logging.PanelDebug("%s: dropping stale gen=%d (current=%d)", l.name, gen, l.gen)
		logging.Audit(logging.CategoryPanel, logging.AuditEvent{
			Event: logging.AuditStale,
			Path:  l.name,
		})
		return false
	}
	if err != nil {
		l.state = Error
		l.err = err
		logging.PanelError("%s: load failed: %v", l.name, err)
		return true
	}
	l.state = Success
	l.data = data
	return true
}

// Fail enters the error state without a fetch. Any in-flight generation
// becomes stale.
func (l *Loader[T]) Fail(err error) {
	l.gen++
	l.state = Error
	l.err = err
	logging.PanelDebug("%s: failed without fetch: %v", l.name, err)
}

// Set replaces the data outside a fetch, e.g. after a local edit.
func (l *Loader[T]) Set(data T) {
	l.data = data
	l.state = Success
	l.err = nil
}

func (l *Loader[T]) State() State  { return l.state }
func (l *Loader[T]) Data() T       { return l.data }
func (l *Loader[T]) Err() error    { return l.err }
func (l *Loader[T]) Loading() bool { return l.state == Loading }

// Empty reports whether the panel should show its empty state.
func (l *Loader[T]) Empty() bool {
	if l.state != Success || l.empty == nil {
		return false
	}
	return l.empty(l.data)
}

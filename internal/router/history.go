package router

import (
	"achievediary/internal/logging"
)

// Router is the navigation history. The zero value is not usable; call New.
// It is not safe for concurrent use; the UI event loop owns it.
type Router struct {
	stack []Location
}

// New returns a router whose only entry is the given start path.
func New(start string) *Router {
	loc := Match(start)
	logging.RouterDebug("router start at %s (%s)", loc.Path, loc.Panel)
	return &Router{stack: []Location{loc}}
}

// Current returns the active location.
func (r *Router) Current() Location {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of history entries.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Push adds a history entry and makes it current.
func (r *Router) Push(path string) Location {
	loc := Match(path)
	r.stack = append(r.stack, loc)
	r.audit("push", loc)
	return loc
}

// Replace swaps the current entry for path.
func (r *Router) Replace(path string) Location {
	loc := Match(path)
	r.stack[len(r.stack)-1] = loc
	r.audit("replace", loc)
	return loc
}

// Back pops the current entry. At the root it does nothing and returns
// false.
func (r *Router) Back() (Location, bool) {
	if len(r.stack) <= 1 {
		return r.Current(), false
	}
	r.stack = r.stack[:len(r.stack)-1]
	loc := r.Current()
	r.audit("back", loc)
	return loc, true
}

func (r *Router) audit(op string, loc Location) {
	logging.RouterDebug("%s -> %s (%s), depth=%d", op, loc.Path, loc.Panel, len(r.stack))
	logging.Audit(logging.CategoryRouter, logging.AuditEvent{
		Event:  logging.AuditNavigate,
		Method: op,
		Path:   loc.Path,
	})
}

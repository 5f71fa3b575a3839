// Package router maps diary paths to panels and keeps the navigation
// history. It owns no panel state: a panel is rebuilt every time its
// location becomes current.
package router

import (
	"strings"

	"achievediary/internal/logging"
)

// Panel identifies which panel a location shows.
type Panel int

const (
	Home Panel = iota
	Create
	Achievement // single record, takes an :id parameter
	Achievements
	Awards
)

func (p Panel) String() string {
	switch p {
	case Create:
		return "create"
	case Achievement:
		return "achievement"
	case Achievements:
		return "achievements"
	case Awards:
		return "awards"
	default:
		return "home"
	}
}

// Route binds a path pattern to a panel. Segments starting with ':' capture
// a parameter.
type Route struct {
	Pattern string
	Panel   Panel
}

// Routes is the fixed route table, in match order.
var Routes = []Route{
	{Pattern: "/", Panel: Home},
	{Pattern: "/create", Panel: Create},
	{Pattern: "/achievement/:id", Panel: Achievement},
	{Pattern: "/achievements", Panel: Achievements},
	{Pattern: "/awards", Panel: Awards},
}

// Location is a resolved path.
type Location struct {
	Path   string
	Panel  Panel
	Params map[string]string
}

// Param returns a path parameter, or "".
func (l Location) Param(name string) string {
	return l.Params[name]
}

// Match resolves path against the route table. Unknown paths resolve to the
// home panel.
func Match(path string) Location {
	path = clean(path)
	segs := split(path)
	for _, r := range Routes {
		if params, ok := matchPattern(split(r.Pattern), segs); ok {
			return Location{Path: path, Panel: r.Panel, Params: params}
		}
	}
	logging.RouterDebug("no route for %q, falling back to home", path)
	return Location{Path: "/", Panel: Home}
}

func matchPattern(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	return path
}

func split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

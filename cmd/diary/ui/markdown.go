package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders achievement descriptions. A nil or failing renderer
// falls back to the raw text.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
	dark     bool
}

// NewMarkdown builds a renderer wrapping at width.
func NewMarkdown(width int, dark bool) *Markdown {
	m := &Markdown{dark: dark}
	m.Resize(width)
	return m
}

// Resize rebuilds the renderer when the wrap width changes.
func (m *Markdown) Resize(width int) {
	if width < 20 {
		width = 20
	}
	if m.renderer != nil && width == m.width {
		return
	}
	style := "light"
	if m.dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
	m.width = width
}

// Render renders markdown with panic recovery
func (m *Markdown) Render(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m == nil || m.renderer == nil || strings.TrimSpace(content) == "" {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

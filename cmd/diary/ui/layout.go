package ui

// Layout constants for panel sizing
const (
	ContentPaddingH = 4
	ContentPaddingV = 6

	HeaderHeight = 2
	FooterHeight = 2

	MinimumTerminalWidth = 60
	CompactModeWidth     = 90

	// Title column in the list table: half the content width
	MinTitleWidth = (MinimumTerminalWidth - ContentPaddingH) / 2
	MaxTitleWidth = 60
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width, never below the minimum.
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - ContentPaddingH
	if w < MinimumTerminalWidth-ContentPaddingH {
		return MinimumTerminalWidth - ContentPaddingH
	}
	return w
}

// ContentHeight returns the rows left between header and footer.
func (l LayoutConfig) ContentHeight() int {
	h := l.TerminalHeight - HeaderHeight - FooterHeight - ContentPaddingV
	if h < 5 {
		return 5
	}
	return h
}

// TitleWidth returns the list's title column width.
func (l LayoutConfig) TitleWidth() int {
	w := l.ContentWidth() / 2
	if w < MinTitleWidth {
		return MinTitleWidth
	}
	if w > MaxTitleWidth {
		return MaxTitleWidth
	}
	return w
}

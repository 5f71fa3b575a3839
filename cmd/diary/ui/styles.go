// Package ui provides the visual styling for the diary terminal client,
// with light and dark palettes.
package ui

import (
	"os"
	"strconv"
	"strings"

	"achievediary/internal/achievement"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f7f5f2")
	LightForeground = lipgloss.Color("#1f2a37")
	LightPrimary    = lipgloss.Color("#3b5bdb") // Diary blue
	LightAccent     = lipgloss.Color("#f59f00") // Award gold
	LightSecondary  = lipgloss.Color("#e9ecef")
	LightMuted      = lipgloss.Color("#868e96")
	LightBorder     = lipgloss.Color("#dee2e6")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#16181d")
	DarkForeground = lipgloss.Color("#f1f3f5")
	DarkPrimary    = lipgloss.Color("#91a7ff")
	DarkAccent     = lipgloss.Color("#ffd43b")
	DarkSecondary  = lipgloss.Color("#25262b")
	DarkMuted      = lipgloss.Color("#909296")
	DarkBorder     = lipgloss.Color("#373a40")
	DarkCard       = lipgloss.Color("#1f2126")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e03131")
	Success     = lipgloss.Color("#2f9e44")
	Warning     = lipgloss.Color("#f08c00")
	Info        = lipgloss.Color("#1c7ed6")
)

// categoryColors tint category badges.
var categoryColors = map[achievement.Category]lipgloss.Color{
	achievement.CategoryStudy:         lipgloss.Color("#1c7ed6"),
	achievement.CategorySkills:        lipgloss.Color("#0ca678"),
	achievement.CategoryCreativity:    lipgloss.Color("#ae3ec9"),
	achievement.CategorySport:         lipgloss.Color("#e8590c"),
	achievement.CategorySocial:        lipgloss.Color("#f76707"),
	achievement.CategoryPersonal:      lipgloss.Color("#2f9e44"),
	achievement.CategoryTravel:        lipgloss.Color("#1098ad"),
	achievement.CategoryRelationships: lipgloss.Color("#d6336c"),
}

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeFor maps a ui.theme setting to a theme. "auto" and unknown values
// fall back to DetectTheme.
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background from COLORFGBG and defaults
// to light.
func DetectTheme() Theme {
	colorTerm := os.Getenv("COLORFGBG")
	if colorTerm != "" {
		// "foreground;background"; indexes 0-6 and 8 are dark backgrounds
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Card    lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Interactive
	Selected lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Disabled lipgloss.Style
	Button   lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(14),

		Focused: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Border),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(theme.Primary).
			Padding(0, 2),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}
}

// CategoryBadge renders a category label tinted by category.
func (s Styles) CategoryBadge(c achievement.Category) string {
	color, ok := categoryColors[c]
	if !ok {
		color = s.Theme.Muted
	}
	return s.Badge.Background(color).Render(c.Label())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

// RenderButton renders a labelled action, greyed out when disabled.
func (s Styles) RenderButton(label string, disabled bool) string {
	if disabled {
		return s.Disabled.Render("[ " + label + " ]")
	}
	return s.Selected.Render("[ " + label + " ]")
}

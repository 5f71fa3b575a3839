package config

// MaxPageSize bounds ui.page_size.
const MaxPageSize = 100

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is auto, light or dark. auto asks the terminal.
	Theme string `yaml:"theme"`

	// PageSize is how many achievements the list shows per page
	PageSize int `yaml:"page_size"`

	// Markdown renders achievement descriptions with glamour
	Markdown bool `yaml:"markdown"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:    "auto",
		PageSize: 10,
		Markdown: true,
	}
}

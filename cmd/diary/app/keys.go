package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings the root model handles itself.
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
	Help      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// Panel bindings.
var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyOpen   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	keyRetry  = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry"))
	keyCreate = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new"))
	keyList   = key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list"))
	keyAwards = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "awards"))

	keyNextPage   = key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page"))
	keyPrevPage   = key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page"))
	keyNextFilter = key.NewBinding(key.WithKeys("right", "f"), key.WithHelp("→/f", "filter"))
	keyPrevFilter = key.NewBinding(key.WithKeys("left", "F"), key.WithHelp("←/F", "filter"))

	keyEdit    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	keyDelete  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	keyConfirm = key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm"))
	keyCancel  = key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel"))

	keyNextField = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	keyPrevField = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field"))
	keySubmit    = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save"))
	keyFormBack  = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
)

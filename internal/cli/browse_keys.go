package cli

import "github.com/charmbracelet/bubbles/key"

// browseKeyMap lists the browser's key bindings.
type browseKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Left      key.Binding
	Right     key.Binding
	Fold      key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Scale     key.Binding
	Group     key.Binding
	Hierarchy key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var browseKeys = browseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "earlier"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "later"),
	),
	Fold: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("⏎", "fold"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	Scale: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "scale"),
	),
	Group: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "group"),
	),
	Hierarchy: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hierarchy"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Fold, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Left, k.Right, k.Fold},
		{k.ZoomIn, k.ZoomOut, k.Scale, k.Group, k.Hierarchy},
		{k.Help, k.Quit},
	}
}

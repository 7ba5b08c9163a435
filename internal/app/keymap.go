package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the explorer's key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	FastLeft   key.Binding
	FastRight  key.Binding
	Next       key.Binding
	Prev       key.Binding
	Select     key.Binding
	Clear      key.Binding
	Reset      key.Binding
	Basemap    key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Retry      key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "window back"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "window forward"),
		),
		FastLeft: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("⇧←/H", "back x10"),
		),
		FastRight: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("⇧→/L", "forward x10"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next eclipse"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "prev eclipse"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go to eclipse"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "reset window"),
		),
		Basemap: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "basemap"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "k"),
			key.WithHelp("k/pgup", "detail up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "j"),
			key.WithHelp("j/pgdn", "detail down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpBindings lists the bindings shown in the help overlay, in order.
func (k KeyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Left, k.Right, k.FastLeft, k.FastRight,
		k.Next, k.Prev, k.Select, k.Clear, k.Reset,
		k.Basemap, k.ScrollUp, k.ScrollDown, k.Retry, k.Help, k.Quit,
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the picker
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Home     key.Binding
	End      key.Binding

	// Terminal states
	Select key.Binding
	Cancel key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "move")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/→", "page")),
		NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next page")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "q", "Q", "ctrl+c"), key.WithHelp("esc/q", "cancel")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

// withPaging enables or disables the page bindings so the hint line only
// mentions keys that do something.
func (k KeyMap) withPaging(enabled bool) KeyMap {
	k.PrevPage.SetEnabled(enabled)
	k.NextPage.SetEnabled(enabled)
	return k
}

// ShortHelp returns the hint line bindings
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.PrevPage, k.Select, k.Cancel, k.Help}
}

// FullHelp is shown after "?" is pressed
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.PrevPage, k.NextPage},
		{k.Select, k.Cancel, k.Help},
	}
}

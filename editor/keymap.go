package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor key bindings.
type KeyMap struct {
	Left, Right           key.Binding
	ShiftLeft, ShiftRight key.Binding
	Home, End             key.Binding
	Up, Down, Tab         key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding
	Paste             key.Binding
	Blur              key.Binding

	SuggestNext    key.Binding
	SuggestPrev    key.Binding
	SuggestAccept  key.Binding
	SuggestDismiss key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		Home:       key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "start")),
		End:        key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "end")),
		Up:         key.NewBinding(key.WithKeys("up")),
		Down:       key.NewBinding(key.WithKeys("down")),
		Tab:        key.NewBinding(key.WithKeys("tab")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Blur:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave editor")),

		SuggestNext:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next suggestion")),
		SuggestPrev:    key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev suggestion")),
		SuggestAccept:  key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "accept suggestion")),
		SuggestDismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss suggestions")),
	}
}

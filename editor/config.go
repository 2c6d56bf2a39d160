package editor

import (
	"log/slog"

	"github.com/iw2rmb/tagnote/note"
	"github.com/iw2rmb/tagnote/suggest"
)

const defaultMaxSuggestions = 8

// Config configures the editor Model.
type Config struct {
	// Note is the initial note. Nil starts empty.
	Note *note.Note

	// Dispatcher serves suggestion lookups. Nil disables suggestions.
	Dispatcher *suggest.Dispatcher
	// MinQuery is the query length after a trigger symbol that fires a
	// lookup. Zero selects trigger.MinQueryRich.
	MinQuery       int
	MaxSuggestions int

	Placeholder string
	Style       Style
	KeyMap      KeyMap
	Clipboard   Clipboard

	// OnChange is called after every reconciled edit and accepted suggestion.
	OnChange func(ChangeEvent)

	Logger *slog.Logger
}

package editor

import (
	"log/slog"
	"reflect"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tagnote/note"
	"github.com/iw2rmb/tagnote/reconcile"
	"github.com/iw2rmb/tagnote/trigger"
)

var lastID atomic.Uint64

// Model is a Bubble Tea component editing one note.
//
// The note and reconciler are shared by copies of the Model, the same way a
// textarea shares its buffer; only use the latest Model returned by Update.
type Model struct {
	id  uint64
	cfg Config

	note    *note.Note
	rec     *reconcile.Reconciler
	scanner *trigger.Scanner
	surf    *surface
	logger  *slog.Logger

	focused bool
	width   int

	// deferred holds the key captured while an edit was in flight.
	deferred *tea.KeyMsg

	popup      SuggestionState
	pendingSeq uint64
}

func New(cfg Config) Model {
	if cfg.Note == nil {
		cfg.Note = note.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Style.Kinds == nil {
		cfg.Style = DefaultStyle()
	}
	if reflect.DeepEqual(cfg.KeyMap, KeyMap{}) {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = defaultMaxSuggestions
	}

	var symbols []rune
	if cfg.Dispatcher != nil {
		symbols = cfg.Dispatcher.Symbols()
	}

	return Model{
		id:      lastID.Add(1),
		cfg:     cfg,
		note:    cfg.Note,
		rec:     reconcile.New(cfg.Note, cfg.Logger),
		scanner: trigger.New(cfg.MinQuery, symbols...),
		surf:    newSurface(cfg.Note.PlainText()),
		logger:  cfg.Logger,
		focused: true,
	}
}

// Note returns the note being edited.
func (m Model) Note() *note.Note { return m.note }

// Text returns the raw surface text.
func (m Model) Text() string { return m.surf.String() }

// Caret returns the caret rune offset.
func (m Model) Caret() int { return m.surf.caret }

// Selection returns the selected rune range; start == end when collapsed.
func (m Model) Selection() (start, end int) { return m.surf.selection() }

// SetCaret moves the caret, collapsing any selection.
func (m Model) SetCaret(off int) Model {
	m.surf.moveTo(off, false)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetWidth(width int) Model {
	m.width = max(width, 0)
	return m
}

func (m Model) Focus() Model {
	m.focused = true
	return m
}

// Blur leaves the editor, dismissing suggestions.
func (m Model) Blur() Model {
	m.focused = false
	m = m.dismissSuggestions()
	return m
}

func (m Model) Focused() bool { return m.focused }

// Reset discards in-flight edit state and reloads the surface from the note.
func (m Model) Reset() Model {
	m.rec.Reset()
	m.deferred = nil
	m.surf = newSurface(m.note.PlainText())
	return m.dismissSuggestions()
}

package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tagnote/reconcile"
)

// settleMsg fires once the surface has applied a captured edit.
type settleMsg struct{ id uint64 }

// replayMsg re-dispatches a key deferred by the in-flight guard.
type replayMsg struct {
	id  uint64
	key tea.KeyMsg
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetWidth(msg.Width), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case replayMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.updateKey(msg.key)
	case settleMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.settle()
	case suggestionsMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.receiveSuggestions(msg), nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	km := m.cfg.KeyMap

	if m.popup.Visible {
		switch {
		case key.Matches(msg, km.SuggestNext):
			return m.moveSuggestion(1), nil
		case key.Matches(msg, km.SuggestPrev):
			return m.moveSuggestion(-1), nil
		case key.Matches(msg, km.SuggestAccept):
			return m.acceptSuggestion(), nil
		case key.Matches(msg, km.SuggestDismiss):
			return m.dismissSuggestions(), nil
		}
	}

	switch {
	case key.Matches(msg, km.Blur):
		return m.Blur(), nil
	case key.Matches(msg, km.ShiftLeft):
		return m.navigate(func() { m.surf.left(true) }), nil
	case key.Matches(msg, km.ShiftRight):
		return m.navigate(func() { m.surf.right(true) }), nil
	case key.Matches(msg, km.Left):
		return m.navigate(func() { m.surf.left(false) }), nil
	case key.Matches(msg, km.Right):
		return m.navigate(func() { m.surf.right(false) }), nil
	case key.Matches(msg, km.Home), key.Matches(msg, km.Up):
		return m.navigate(m.surf.home), nil
	case key.Matches(msg, km.End), key.Matches(msg, km.Down):
		return m.navigate(m.surf.end), nil
	case key.Matches(msg, km.Tab):
		return m.navigate(func() {}), nil

	case key.Matches(msg, km.Backspace):
		return m.edit(msg, reconcile.KeyBackspace, m.surf.backspace)
	case key.Matches(msg, km.Delete):
		return m.edit(msg, reconcile.KeyEdit, m.surf.deleteForward)
	case key.Matches(msg, km.Enter):
		return m.edit(msg, reconcile.KeyEdit, func() { m.surf.replaceSelection("\n") })
	case key.Matches(msg, km.Paste):
		text := m.readClipboard()
		if text == "" {
			return m, nil
		}
		return m.edit(msg, reconcile.KeyEdit, func() { m.surf.replaceSelection(text) })
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
		text := string(msg.Runes)
		return m.edit(msg, reconcile.KeyEdit, func() { m.surf.replaceSelection(text) })
	}
	if msg.Type == tea.KeySpace {
		return m.edit(msg, reconcile.KeyEdit, func() { m.surf.replaceSelection(" ") })
	}
	return m, nil
}

// navigate moves the caret. Navigation never reaches the reconciler; a
// pending edit keeps its captured selection.
func (m Model) navigate(move func()) Model {
	move()
	return m.dismissSuggestions()
}

// edit runs the capture phase, applies the native edit to the surface and
// schedules the settle phase for the next turn of the event loop.
func (m Model) edit(msg tea.KeyMsg, k reconcile.Key, native func()) (Model, tea.Cmd) {
	switch m.rec.Capture(m.surf.snapshot(), k) {
	case reconcile.OutcomeDeferred:
		m.deferred = &msg
		return m, nil
	case reconcile.OutcomeCaptured:
	default:
		return m, nil
	}
	native()
	id := m.id
	return m, func() tea.Msg { return settleMsg{id: id} }
}

func (m Model) settle() (Model, tea.Cmd) {
	res, err := m.rec.Settle(m.surf.snapshot())
	if err != nil {
		m.logger.Debug("editor: settle without pending edit", "error", err)
		return m, nil
	}
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.note, res.Caret, res.Edit, res.Resynced))
	}

	var cmds []tea.Cmd
	var lookup tea.Cmd
	m, lookup = m.scanTrigger()
	cmds = append(cmds, lookup)

	if res.Replay && m.deferred != nil {
		k := *m.deferred
		m.deferred = nil
		id := m.id
		cmds = append(cmds, func() tea.Msg { return replayMsg{id: id, key: k} })
	}
	return m, tea.Batch(cmds...)
}

func (m Model) readClipboard() string {
	if m.cfg.Clipboard == nil {
		return ""
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.logger.Debug("editor: clipboard read failed", "error", err)
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

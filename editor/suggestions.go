package editor

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tagnote/note"
	"github.com/iw2rmb/tagnote/reconcile"
	"github.com/iw2rmb/tagnote/suggest"
	"github.com/iw2rmb/tagnote/trigger"
)

// SuggestionState is the suggestion popup as seen by the host.
type SuggestionState struct {
	Visible  bool
	Token    trigger.Token
	Kind     note.Kind
	Items    []suggest.Candidate
	Selected int
}

type suggestionsMsg struct {
	id  uint64
	tok trigger.Token
	res suggest.Result
}

// Suggestions returns the popup state.
func (m Model) Suggestions() SuggestionState {
	st := m.popup
	st.Items = append([]suggest.Candidate(nil), st.Items...)
	return st
}

// scanTrigger inspects the token at the caret and issues a lookup when it
// is a registered trigger with a long enough query.
func (m Model) scanTrigger() (Model, tea.Cmd) {
	disp := m.cfg.Dispatcher
	if disp == nil {
		return m, nil
	}
	start, end := m.surf.selection()
	tok, ok := m.scanner.Match(m.surf.String(), start, end)
	if !ok {
		m.pendingSeq = 0
		return m.dismissSuggestions(), nil
	}

	if m.popup.Visible && m.popup.Token != tok {
		// The candidates belong to the previous token.
		m = m.dismissSuggestions()
	}

	seq := disp.Next()
	m.pendingSeq = seq
	id := m.id
	return m, func() tea.Msg {
		res := disp.LookupSeq(context.Background(), seq, tok.Symbol, tok.Query)
		return suggestionsMsg{id: id, tok: tok, res: res}
	}
}

func (m Model) receiveSuggestions(msg suggestionsMsg) Model {
	if msg.res.Seq != m.pendingSeq {
		// A newer keystroke superseded this lookup.
		return m
	}
	m.pendingSeq = 0
	if len(msg.res.Candidates) == 0 {
		return m.dismissSuggestions()
	}
	items := msg.res.Candidates
	if len(items) > m.cfg.MaxSuggestions {
		items = items[:m.cfg.MaxSuggestions]
	}
	m.popup = SuggestionState{
		Visible: true,
		Token:   msg.tok,
		Kind:    msg.res.Kind,
		Items:   items,
	}
	return m
}

func (m Model) moveSuggestion(delta int) Model {
	n := len(m.popup.Items)
	if n == 0 {
		return m
	}
	m.popup.Selected = ((m.popup.Selected+delta)%n + n) % n
	return m
}

func (m Model) dismissSuggestions() Model {
	m.popup = SuggestionState{}
	return m
}

// acceptSuggestion replaces the trigger token with an annotation built from
// the selected candidate.
func (m Model) acceptSuggestion() Model {
	st := m.popup
	m = m.dismissSuggestions()
	if st.Selected >= len(st.Items) || m.rec.Pending() {
		return m
	}
	text := m.surf.String()
	start, end := m.surf.selection()
	if m.note.PlainText() != text || trigger.Scan(text, start, end) != st.Token {
		// The token changed since the lookup was issued.
		return m
	}

	cand := st.Items[st.Selected]
	value := cand.Value
	if value == nil {
		value = cand.Label
	}
	seg := note.Annotation(st.Kind, cand.Label, value)
	length := st.Token.End - st.Token.Start
	if err := m.note.Annotate(st.Token.Start, length, seg); err != nil {
		m.logger.Warn("editor: cannot accept suggestion", "label", cand.Label, "error", err)
		return m
	}

	caret := st.Token.Start + seg.Len()
	m.surf.setText(m.note.PlainText(), caret)
	if m.cfg.OnChange != nil {
		edit := reconcile.Edit{Start: st.Token.Start, Removed: length, Inserted: cand.Label}
		m.cfg.OnChange(buildChangeEvent(m.note, caret, edit, false))
	}
	return m
}

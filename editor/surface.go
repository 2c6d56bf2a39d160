package editor

import (
	"github.com/iw2rmb/tagnote/internal/grapheme"
	"github.com/iw2rmb/tagnote/reconcile"
)

// surface is the plain, uncontrolled text input: runes plus a selection
// from anchor to caret. It knows nothing about segments.
type surface struct {
	text   []rune
	anchor int
	caret  int
}

func newSurface(text string) *surface {
	r := []rune(text)
	return &surface{text: r, anchor: len(r), caret: len(r)}
}

func (s *surface) String() string { return string(s.text) }

func (s *surface) selection() (start, end int) {
	if s.anchor <= s.caret {
		return s.anchor, s.caret
	}
	return s.caret, s.anchor
}

func (s *surface) hasSelection() bool { return s.anchor != s.caret }

func (s *surface) snapshot() reconcile.Snapshot {
	start, end := s.selection()
	return reconcile.Snapshot{Text: string(s.text), SelStart: start, SelEnd: end}
}

func (s *surface) setText(text string, caret int) {
	s.text = []rune(text)
	caret = min(max(caret, 0), len(s.text))
	s.anchor, s.caret = caret, caret
}

// replaceSelection types in over the selection, leaving a collapsed caret
// after the inserted text.
func (s *surface) replaceSelection(in string) {
	start, end := s.selection()
	ins := []rune(in)
	next := make([]rune, 0, len(s.text)-(end-start)+len(ins))
	next = append(next, s.text[:start]...)
	next = append(next, ins...)
	next = append(next, s.text[end:]...)
	s.text = next
	s.caret = start + len(ins)
	s.anchor = s.caret
}

// backspace removes the selection or the single rune before the caret.
func (s *surface) backspace() {
	if !s.hasSelection() {
		if s.caret == 0 {
			return
		}
		s.anchor = s.caret - 1
	}
	s.replaceSelection("")
}

// deleteForward removes the selection or the single rune after the caret.
func (s *surface) deleteForward() {
	if !s.hasSelection() {
		if s.caret == len(s.text) {
			return
		}
		s.anchor = s.caret + 1
	}
	s.replaceSelection("")
}

func (s *surface) moveTo(off int, extend bool) {
	s.caret = min(max(off, 0), len(s.text))
	if !extend {
		s.anchor = s.caret
	}
}

func (s *surface) left(extend bool) {
	if !extend && s.hasSelection() {
		start, _ := s.selection()
		s.moveTo(start, false)
		return
	}
	s.moveTo(grapheme.Prev(s.String(), s.caret), extend)
}

func (s *surface) right(extend bool) {
	if !extend && s.hasSelection() {
		_, end := s.selection()
		s.moveTo(end, false)
		return
	}
	s.moveTo(grapheme.Next(s.String(), s.caret), extend)
}

func (s *surface) home() { s.moveTo(0, false) }

func (s *surface) end() { s.moveTo(len(s.text), false) }

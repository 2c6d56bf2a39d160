package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/tagnote/internal/grapheme"
	"github.com/iw2rmb/tagnote/note"
)

const defaultPopupWidth = 40

type runeClass uint8

const (
	classPlain runeClass = iota
	classSelected
	classCursor
)

// styledRun is a maximal run of runes sharing one segment and one class.
type styledRun struct {
	seg   int
	class runeClass
	text  []rune
}

func (m Model) View() string {
	body := m.renderContent()
	if m.width > 0 {
		body = lipgloss.NewStyle().Width(m.width).Render(body)
	}
	if !m.popup.Visible {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderPopup())
}

// renderContent renders the surface text, styling each rune by the segment
// it belongs to. While an edit is unsettled the note lags the surface and
// everything renders as plain text.
func (m Model) renderContent() string {
	st := m.cfg.Style
	text := m.surf.text

	if len(text) == 0 {
		var b strings.Builder
		if m.focused {
			b.WriteString(st.Cursor.Render(" "))
		}
		if m.cfg.Placeholder != "" {
			b.WriteString(st.Placeholder.Render(m.cfg.Placeholder))
		}
		return b.String()
	}

	var segs []note.Segment
	owner := make([]int, len(text))
	for i := range owner {
		owner[i] = -1
	}
	if m.note.PlainText() == string(text) {
		segs = m.note.Segments()
		off := 0
		for i, s := range segs {
			for j := 0; j < s.Len(); j++ {
				owner[off+j] = i
			}
			off += s.Len()
		}
	}

	selStart, selEnd := m.surf.selection()
	runs := make([]styledRun, 0, len(segs)+3)
	for i, r := range text {
		class := classPlain
		switch {
		case m.focused && selStart == selEnd && i == m.surf.caret:
			class = classCursor
		case selStart <= i && i < selEnd:
			class = classSelected
		}
		if n := len(runs); n > 0 && runs[n-1].seg == owner[i] && runs[n-1].class == class && class != classCursor {
			runs[n-1].text = append(runs[n-1].text, r)
			continue
		}
		runs = append(runs, styledRun{seg: owner[i], class: class, text: []rune{r}})
	}

	var b strings.Builder
	for _, run := range runs {
		style := st.Text
		if run.seg >= 0 {
			style = st.forSegment(segs[run.seg])
		}
		switch run.class {
		case classSelected:
			style = st.Selection.Inherit(style)
		case classCursor:
			style = st.Cursor.Inherit(style)
		}
		writeRun(&b, style, run.text, run.class == classCursor)
	}
	if m.focused && selStart == selEnd && m.surf.caret == len(text) {
		b.WriteString(st.Cursor.Render(" "))
	}
	return b.String()
}

// writeRun renders line by line so styles never span a newline. A cursor
// on a newline is drawn as a blank cell before the break.
func writeRun(b *strings.Builder, style lipgloss.Style, text []rune, cursor bool) {
	lines := strings.Split(string(text), "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line == "" {
			if cursor && i == 0 {
				b.WriteString(style.Render(" "))
			}
			continue
		}
		b.WriteString(style.Render(line))
	}
}

func (m Model) renderPopup() string {
	st := m.cfg.Style
	width := defaultPopupWidth
	if m.width > 0 {
		width = min(width, max(m.width-st.Popup.GetHorizontalFrameSize(), 1))
	}

	lines := make([]string, 0, len(m.popup.Items))
	for i, c := range m.popup.Items {
		label := grapheme.Truncate(c.Label, width, "…")
		line := label
		if c.Detail != "" {
			if room := width - grapheme.Width(label) - 2; room > 0 {
				line += "  " + st.PopupDetail.Render(grapheme.Truncate(c.Detail, room, "…"))
			}
		}
		pad := max(width-ansi.StringWidth(line), 0)
		line += strings.Repeat(" ", pad)
		if i == m.popup.Selected {
			lines = append(lines, st.PopupSelected.Render(line))
		} else {
			lines = append(lines, st.PopupItem.Render(line))
		}
	}
	return st.Popup.Render(strings.Join(lines, "\n"))
}

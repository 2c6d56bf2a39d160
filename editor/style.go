package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/tagnote/note"
)

// Style controls the editor's rendering.
type Style struct {
	Text        lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style

	// Kinds styles annotations by kind; Annotation covers kinds not listed.
	Kinds      map[note.Kind]lipgloss.Style
	Annotation lipgloss.Style

	Popup         lipgloss.Style
	PopupItem     lipgloss.Style
	PopupSelected lipgloss.Style
	PopupDetail   lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:        lipgloss.NewStyle(),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Kinds: map[note.Kind]lipgloss.Style{
			note.KindUser:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true),
			note.KindDate:    lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Underline(true),
			note.KindTime:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Underline(true),
			note.KindDossier: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Underline(true),
		},
		Annotation:    lipgloss.NewStyle().Underline(true),
		Popup:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		PopupItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PopupSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")),
		PopupDetail:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// WithKindColors returns a copy of s whose annotation styles use the given
// foreground colours, keyed by kind name.
func (s Style) WithKindColors(colors map[string]string) Style {
	kinds := make(map[note.Kind]lipgloss.Style, len(s.Kinds)+len(colors))
	for k, st := range s.Kinds {
		kinds[k] = st
	}
	for name, c := range colors {
		st, ok := kinds[note.Kind(name)]
		if !ok {
			st = s.Annotation
		}
		kinds[note.Kind(name)] = st.Foreground(lipgloss.Color(c))
	}
	s.Kinds = kinds
	return s
}

func (s Style) forSegment(seg note.Segment) lipgloss.Style {
	if seg.IsText() {
		return s.Text
	}
	if st, ok := s.Kinds[seg.Kind]; ok {
		return st
	}
	return s.Annotation
}

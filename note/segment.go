package note

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

// Kind tags a segment. The set is open: hosts may use their own kinds.
type Kind string

const (
	KindText    Kind = "text"
	KindUser    Kind = "user"
	KindDate    Kind = "date"
	KindTime    Kind = "time"
	KindDossier Kind = "dossier"
)

// IsText reports whether k denotes plain, unannotated text.
// The zero Kind counts as text.
func (k Kind) IsText() bool { return k == KindText || k == "" }

// Segment is one contiguous span of a note.
type Segment struct {
	Kind  Kind
	Text  string
	Value any
}

// Text returns a plain text segment.
func Text(s string) Segment { return Segment{Kind: KindText, Text: s} }

// Annotation returns a segment of the given kind carrying value.
func Annotation(kind Kind, text string, value any) Segment {
	return Segment{Kind: kind, Text: text, Value: value}
}

// IsText reports whether the segment is plain text.
func (s Segment) IsText() bool { return s.Kind.IsText() }

// Len returns the segment length in runes.
func (s Segment) Len() int { return utf8.RuneCountInString(s.Text) }

// ValueString formats the opaque value. Text segments yield "".
func (s Segment) ValueString() string {
	if s.IsText() || s.Value == nil {
		return ""
	}
	if v, ok := s.Value.(string); ok {
		return v
	}
	return fmt.Sprint(s.Value)
}

// RenderInline returns the segment's HTML form: the escaped text for plain
// segments, an anchor carrying kind and value for annotations.
func (s Segment) RenderInline() string {
	if s.IsText() {
		return html.EscapeString(s.Text)
	}
	var sb strings.Builder
	sb.WriteString(`<a data-type="`)
	sb.WriteString(html.EscapeString(string(s.Kind)))
	sb.WriteString(`" data-value="`)
	sb.WriteString(html.EscapeString(s.ValueString()))
	sb.WriteString(`">`)
	sb.WriteString(html.EscapeString(s.Text))
	sb.WriteString(`</a>`)
	return sb.String()
}

package note

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyText     = errors.New("note: segment text is empty")
	ErrValueMismatch = errors.New("note: value must be present iff kind is not text")
)

// Note is the ordered segment sequence representing one note.
//
// The zero value is an empty note ready for use.
type Note struct {
	segs    []Segment
	version uint64
}

// New returns an empty note.
func New() *Note { return &Note{} }

// FromSegments builds a note from segs, validating every segment.
// The result is not normalized; adjacent text segments are kept as given.
func FromSegments(segs []Segment) (*Note, error) {
	n := &Note{segs: make([]Segment, 0, len(segs))}
	for i, s := range segs {
		if err := validateSegment(s); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if s.Kind == "" {
			s.Kind = KindText
		}
		if s.IsText() {
			s.Value = nil
		}
		n.segs = append(n.segs, s)
	}
	return n, nil
}

func validateSegment(s Segment) error {
	if s.Text == "" {
		return ErrEmptyText
	}
	if s.IsText() != (s.Value == nil) {
		return fmt.Errorf("%w (kind %q)", ErrValueMismatch, s.Kind)
	}
	return nil
}

// Segments returns a copy of the segment sequence.
func (n *Note) Segments() []Segment {
	if len(n.segs) == 0 {
		return nil
	}
	return append([]Segment(nil), n.segs...)
}

// Version increments on every effective mutation.
func (n *Note) Version() uint64 { return n.version }

// Len returns the plain text length in runes.
func (n *Note) Len() int {
	total := 0
	for _, s := range n.segs {
		total += s.Len()
	}
	return total
}

// PlainText concatenates all segment texts in order.
func (n *Note) PlainText() string {
	var sb strings.Builder
	for _, s := range n.segs {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// HTML concatenates the inline rendering of every segment.
func (n *Note) HTML() string {
	var sb strings.Builder
	for _, s := range n.segs {
		sb.WriteString(s.RenderInline())
	}
	return sb.String()
}

// FindByKind returns the first segment of the given kind.
func (n *Note) FindByKind(kind Kind) (Segment, bool) {
	for _, s := range n.segs {
		if s.Kind == kind {
			return s, true
		}
	}
	return Segment{}, false
}

// Value returns the value of the first segment of the given kind.
func (n *Note) Value(kind Kind) (any, bool) {
	s, ok := n.FindByKind(kind)
	if !ok {
		return nil, false
	}
	return s.Value, true
}

// Time returns the value of the note's time annotation, if any.
func (n *Note) Time() (string, bool) { return n.valueString(KindTime) }

// Date returns the value of the note's date annotation, if any.
func (n *Note) Date() (string, bool) { return n.valueString(KindDate) }

func (n *Note) valueString(kind Kind) (string, bool) {
	s, ok := n.FindByKind(kind)
	if !ok {
		return "", false
	}
	return s.ValueString(), true
}

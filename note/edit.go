package note

import (
	"fmt"
	"slices"
)

type insertMode uint8

const (
	insertSplice insertMode = iota // splice into segs[index] at col
	insertBefore                   // new text segment before segs[index]
	insertAfter                    // new text segment after segs[index]
)

type insertPlan struct {
	mode  insertMode
	index int
	col   int
}

// cut removes runes [from, to) from segs[index].
type cut struct {
	index    int
	from, to int
}

// InsertChars inserts chars at rune offset start.
//
// Inserting inside a segment turns it into plain text. Inserting exactly at
// the end of an annotation adds a new text segment after it. Inserting at the
// start of an annotation with no text segment in front of it (offset 0 of a
// leading annotation, or between two annotations) deliberately keeps the
// annotation and adds a new text segment before it, where a plain splice
// would have converted the annotation to text.
// The note is not normalized.
func (n *Note) InsertChars(start int, chars string) *Note {
	if chars == "" {
		return n
	}
	n.checkRange("InsertChars", start, 0)

	if len(n.segs) == 0 {
		n.segs = []Segment{Text(chars)}
		n.version++
		return n
	}

	p := n.planInsert(start)
	switch p.mode {
	case insertAfter:
		n.segs = slices.Insert(n.segs, p.index+1, Text(chars))
	case insertBefore:
		n.segs = slices.Insert(n.segs, p.index, Text(chars))
	default:
		r := []rune(n.segs[p.index].Text)
		n.segs[p.index] = Text(string(r[:p.col]) + chars + string(r[p.col:]))
	}
	n.version++
	return n
}

func (n *Note) planInsert(start int) insertPlan {
	consumed := 0
	for i, s := range n.segs {
		l := s.Len()
		local := start - consumed
		if local <= l {
			switch {
			case !s.IsText() && local == l:
				return insertPlan{mode: insertAfter, index: i}
			case !s.IsText() && local == 0:
				return insertPlan{mode: insertBefore, index: i}
			default:
				return insertPlan{mode: insertSplice, index: i, col: local}
			}
		}
		consumed += l
	}
	// checkRange guarantees start <= Len().
	panic(fmt.Sprintf("note: no segment covers offset %d", start))
}

// DeleteChars removes length runes starting at rune offset start. The range
// may span several segments. Segments left empty are removed; segments that
// lose only part of their text become plain text. The note is not normalized.
func (n *Note) DeleteChars(start, length int) *Note {
	if length <= 0 {
		return n
	}
	n.checkRange("DeleteChars", start, length)

	cuts := n.planDelete(start, length)
	for i := len(cuts) - 1; i >= 0; i-- {
		c := cuts[i]
		r := []rune(n.segs[c.index].Text)
		rest := string(r[:c.from]) + string(r[c.to:])
		if rest == "" {
			n.segs = slices.Delete(n.segs, c.index, c.index+1)
			continue
		}
		n.segs[c.index] = Text(rest)
	}
	if len(cuts) > 0 {
		n.version++
	}
	return n
}

func (n *Note) planDelete(start, length int) []cut {
	var cuts []cut
	for i, s := range n.segs {
		if length <= 0 {
			break
		}
		l := s.Len()
		local := max(start, 0)
		if local < l {
			to := min(l, local+length)
			cuts = append(cuts, cut{index: i, from: local, to: to})
			length -= to - local
		}
		start -= l
	}
	return cuts
}

// Normalize merges every run of adjacent text segments into one.
func (n *Note) Normalize() *Note {
	if len(n.segs) < 2 {
		return n
	}
	out := make([]Segment, 0, len(n.segs))
	merged := false
	for _, s := range n.segs {
		if k := len(out); k > 0 && out[k-1].IsText() && s.IsText() {
			out[k-1].Text += s.Text
			merged = true
			continue
		}
		out = append(out, s)
	}
	if merged {
		n.segs = out
		n.version++
	}
	return n
}

// Annotate replaces the runes [start, start+length) with seg and normalizes.
func (n *Note) Annotate(start, length int, seg Segment) error {
	if err := validateSegment(seg); err != nil {
		return err
	}
	if seg.Kind == "" {
		seg.Kind = KindText
	}
	n.checkRange("Annotate", start, length)

	n.DeleteChars(start, length)
	idx := n.splitAt(start)
	n.segs = slices.Insert(n.segs, idx, seg)
	n.version++
	n.Normalize()
	return nil
}

// splitAt makes offset a segment boundary and returns the index of the
// segment starting there (len(segs) at the end of the note). Splitting an
// annotation leaves two plain text halves.
func (n *Note) splitAt(offset int) int {
	consumed := 0
	for i, s := range n.segs {
		if offset == consumed {
			return i
		}
		l := s.Len()
		if offset < consumed+l {
			r := []rune(s.Text)
			col := offset - consumed
			left, right := Text(string(r[:col])), Text(string(r[col:]))
			n.segs = slices.Replace(n.segs, i, i+1, left, right)
			n.version++
			return i + 1
		}
		consumed += l
	}
	return len(n.segs)
}

func (n *Note) checkRange(op string, start, length int) {
	if total := n.Len(); start < 0 || length < 0 || start+length > total {
		panic(fmt.Sprintf("note: %s range [%d,%d) out of bounds [0,%d]", op, start, start+length, total))
	}
}

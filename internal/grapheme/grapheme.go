// Package grapheme converts between rune offsets and grapheme cluster
// boundaries, and measures cluster display width.
package grapheme

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Boundaries returns the rune offsets at which clusters of text start,
// followed by the total rune count.
func Boundaries(text string) []int {
	out := []int{0}
	if text == "" {
		return out
	}
	g := uniseg.NewGraphemes(text)
	off := 0
	for g.Next() {
		off += len(g.Runes())
		out = append(out, off)
	}
	return out
}

// Prev returns the cluster boundary before rune offset off.
func Prev(text string, off int) int {
	prev := 0
	for _, b := range Boundaries(text) {
		if b >= off {
			break
		}
		prev = b
	}
	return prev
}

// Next returns the cluster boundary after rune offset off.
func Next(text string, off int) int {
	bounds := Boundaries(text)
	for _, b := range bounds {
		if b > off {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

// Width returns the display width of text in terminal cells.
func Width(text string) int {
	w := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w += clusterWidth(g.Str())
	}
	return w
}

// Truncate cuts text to at most width cells without splitting a cluster,
// ending with tail when something was cut.
func Truncate(text string, width int, tail string) string {
	if Width(text) <= width {
		return text
	}
	limit := width - Width(tail)
	if limit <= 0 {
		return ""
	}
	var sb strings.Builder
	w := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cw := clusterWidth(g.Str())
		if w+cw > limit {
			break
		}
		sb.WriteString(g.Str())
		w += cw
	}
	sb.WriteString(tail)
	return sb.String()
}


func clusterWidth(cluster string) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	if r == '\t' {
		return 1
	}
	return runewidth.StringWidth(cluster)
}

// Package trigger finds the whitespace-delimited token touching the caret and
// decides whether it is an autocomplete trigger such as "@bo".
package trigger

import (
	"slices"
	"unicode"
)

const (
	// MinQueryRich is the minimum query length of the richer integration.
	MinQueryRich = 2
	// MinQuerySimple is the minimum query length of the simpler integration.
	MinQuerySimple = 3
)

// Token is the run of non-whitespace runes around the caret.
type Token struct {
	Start int // rune offset of the first rune
	End   int // rune offset one past the last rune
	Text  string

	Symbol rune   // first rune, 0 for an empty token
	Query  string // Text without Symbol
}

// QueryLen returns the query length in runes.
func (t Token) QueryLen() int { return max(t.End-t.Start-1, 0) }

// Scan extracts the token touching the caret. selEnd is the end of the
// current selection (equal to caret when collapsed). Offsets are runes and
// are clamped into the text.
func Scan(text string, caret, selEnd int) Token {
	r := []rune(text)
	caret = min(max(caret, 0), len(r))
	selEnd = min(max(selEnd, caret), len(r))

	start := 0
	for i := caret - 1; i >= 0; i-- {
		if unicode.IsSpace(r[i]) {
			start = i + 1
			break
		}
	}

	end := caret
	for i := selEnd; i < len(r); i++ {
		if unicode.IsSpace(r[i]) {
			end = i
			break
		}
	}

	tok := Token{Start: start, End: end, Text: string(r[start:end])}
	if end > start {
		tok.Symbol = r[start]
		tok.Query = string(r[start+1 : end])
	}
	return tok
}

// Scanner matches tokens against a fixed set of trigger symbols.
type Scanner struct {
	minQuery int
	symbols  []rune
}

// New returns a scanner for symbols. minQuery <= 0 selects MinQueryRich.
func New(minQuery int, symbols ...rune) *Scanner {
	if minQuery <= 0 {
		minQuery = MinQueryRich
	}
	return &Scanner{minQuery: minQuery, symbols: slices.Clone(symbols)}
}

// MinQuery returns the minimum query length that fires a lookup.
func (s *Scanner) MinQuery() int { return s.minQuery }

// Registered reports whether r is a trigger symbol.
func (s *Scanner) Registered(r rune) bool { return slices.Contains(s.symbols, r) }

// Match scans the caret token and reports whether it fires a lookup.
func (s *Scanner) Match(text string, caret, selEnd int) (Token, bool) {
	tok := Scan(text, caret, selEnd)
	if tok.Symbol == 0 || !s.Registered(tok.Symbol) {
		return tok, false
	}
	return tok, tok.QueryLen() >= s.minQuery
}

package trigger

import "testing"

func TestScan_TokenAtEnd(t *testing.T) {
	tok := Scan("hello @bo", 9, 9)
	if got, want := tok, (Token{Start: 6, End: 9, Text: "@bo", Symbol: '@', Query: "bo"}); got != want {
		t.Fatalf("token=%+v, want %+v", got, want)
	}
}

func TestScan_TokenTerminatedByWhitespace(t *testing.T) {
	tok := Scan("see #hero now", 6, 6)
	if got, want := tok.Text, "#hero"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := tok.End, 9; got != want {
		t.Fatalf("end=%d, want %d", got, want)
	}
}

func TestScan_UnterminatedTokenEndsAtCaret(t *testing.T) {
	tok := Scan("@bob", 2, 2)
	if got, want := tok.Text, "@b"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestScan_EmptyTokenAfterSpace(t *testing.T) {
	tok := Scan("hello ", 6, 6)
	if tok.Symbol != 0 || tok.Text != "" || tok.QueryLen() != 0 {
		t.Fatalf("token=%+v, want empty", tok)
	}
	tok = Scan("", 0, 0)
	if tok.Symbol != 0 {
		t.Fatalf("token=%+v, want empty", tok)
	}
}

func TestScan_NewlineIsWhitespace(t *testing.T) {
	tok := Scan("line\n@zoë", 9, 9)
	if got, want := tok.Query, "zoë"; got != want {
		t.Fatalf("query=%q, want %q", got, want)
	}
	if got, want := tok.QueryLen(), 3; got != want {
		t.Fatalf("query len=%d, want %d", got, want)
	}
}

func TestScanner_Match(t *testing.T) {
	s := New(MinQueryRich, '@', '#')

	tok, ok := s.Match("hello @bo", 9, 9)
	if !ok || tok.Query != "bo" || tok.Symbol != '@' {
		t.Fatalf("match=(%+v,%v), want fire with bo", tok, ok)
	}

	if _, ok := s.Match("hello @bo", 8, 8); ok {
		t.Fatalf("query of length 1 must not fire")
	}
	if _, ok := s.Match("hello !bo", 9, 9); ok {
		t.Fatalf("unregistered symbol must not fire")
	}
}

func TestScanner_SimpleMinimum(t *testing.T) {
	s := New(MinQuerySimple, '@')
	if _, ok := s.Match("@bo", 3, 3); ok {
		t.Fatalf("two characters must not fire with minimum 3")
	}
	if _, ok := s.Match("@bob", 4, 4); !ok {
		t.Fatalf("three characters must fire with minimum 3")
	}
	if got := New(0).MinQuery(); got != MinQueryRich {
		t.Fatalf("default min query=%d, want %d", got, MinQueryRich)
	}
}

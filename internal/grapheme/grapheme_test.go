package grapheme

import (
	"reflect"
	"testing"
)

func TestBoundaries_CombiningMarks(t *testing.T) {
	// "e" + combining acute is one cluster of two runes.
	text := "ae\u0301b"
	if got, want := Boundaries(text), []int{0, 1, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("boundaries=%v, want %v", got, want)
	}
	if got, want := Next(text, 1), 3; got != want {
		t.Fatalf("next=%d, want %d", got, want)
	}
	if got, want := Prev(text, 3), 1; got != want {
		t.Fatalf("prev=%d, want %d", got, want)
	}
	if got, want := Prev(text, 0), 0; got != want {
		t.Fatalf("prev at start=%d, want %d", got, want)
	}
	if got, want := Next(text, 4), 4; got != want {
		t.Fatalf("next at end=%d, want %d", got, want)
	}
}

func TestBoundaries_Empty(t *testing.T) {
	if got, want := Boundaries(""), []int{0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("boundaries=%v, want %v", got, want)
	}
}

func TestWidthAndTruncate(t *testing.T) {
	if got, want := Width("テスト"), 6; got != want {
		t.Fatalf("width=%d, want %d", got, want)
	}
	if got, want := Truncate("テスト", 5, "…"), "テス…"; got != want {
		t.Fatalf("truncate=%q, want %q", got, want)
	}
	if got, want := Truncate("short", 10, "…"), "short"; got != want {
		t.Fatalf("truncate=%q, want %q", got, want)
	}
}

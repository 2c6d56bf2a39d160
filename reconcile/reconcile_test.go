package reconcile

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iw2rmb/tagnote/note"
)

// surface is a minimal stand-in for a native text input.
type surface struct {
	text       []rune
	start, end int
}

func newSurface(text string, start, end int) *surface {
	return &surface{text: []rune(text), start: start, end: end}
}

func (s *surface) snapshot() Snapshot {
	return Snapshot{Text: string(s.text), SelStart: s.start, SelEnd: s.end}
}

func (s *surface) typeText(in string) {
	rest := append([]rune(in), s.text[s.end:]...)
	s.text = append(s.text[:s.start:s.start], rest...)
	s.start += len([]rune(in))
	s.end = s.start
}

func (s *surface) backspace() {
	if s.start != s.end {
		s.typeText("")
		return
	}
	if s.start == 0 {
		return
	}
	s.start--
	s.typeText("")
}

func (s *surface) deleteForward() {
	if s.start == s.end && s.end < len(s.text) {
		s.end++
	}
	s.typeText("")
}

func mustNote(t *testing.T, segs ...note.Segment) *note.Note {
	t.Helper()
	n, err := note.FromSegments(segs)
	if err != nil {
		t.Fatalf("FromSegments: %v", err)
	}
	return n
}

func step(t *testing.T, r *Reconciler, s *surface, key Key, native func()) Result {
	t.Helper()
	if got := r.Capture(s.snapshot(), key); got != OutcomeCaptured {
		t.Fatalf("capture outcome=%v, want captured", got)
	}
	native()
	res, err := r.Settle(s.snapshot())
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if got, want := r.Note().PlainText(), string(s.text); got != want {
		t.Fatalf("note=%q, surface=%q", got, want)
	}
	return res
}

func TestReconciler_TypingIntoEmptyNote(t *testing.T) {
	r := New(note.New(), nil)
	s := newSurface("", 0, 0)

	for _, ch := range []string{"h", "i", "!"} {
		step(t, r, s, KeyEdit, func() { s.typeText(ch) })
	}
	if got := r.Note().Segments(); !reflect.DeepEqual(got, []note.Segment{note.Text("hi!")}) {
		t.Fatalf("segments=%#v", got)
	}
}

func TestReconciler_TypingAfterAnnotationKeepsIt(t *testing.T) {
	n := mustNote(t, note.Text("Hey "), note.Annotation(note.KindUser, "max", 12), note.Text("!"))
	r := New(n, nil)
	s := newSurface(n.PlainText(), 7, 7)

	res := step(t, r, s, KeyEdit, func() { s.typeText(",") })
	if got, want := res.Edit, (Edit{Start: 7, Inserted: ","}); got != want {
		t.Fatalf("edit=%+v, want %+v", got, want)
	}
	if got, want := res.Caret, 8; got != want {
		t.Fatalf("caret=%d, want %d", got, want)
	}
	want := []note.Segment{
		note.Text("Hey "),
		note.Annotation(note.KindUser, "max", 12),
		note.Text(",!"),
	}
	if got := r.Note().Segments(); !reflect.DeepEqual(got, want) {
		t.Fatalf("segments=%#v, want %#v", got, want)
	}
}

func TestReconciler_OverwriteSelection(t *testing.T) {
	r := New(mustNote(t, note.Text("hello")), nil)
	s := newSurface("hello", 1, 4)

	res := step(t, r, s, KeyEdit, func() { s.typeText("i") })
	if got, want := res.Edit, (Edit{Start: 1, Removed: 3, Inserted: "i"}); got != want {
		t.Fatalf("edit=%+v, want %+v", got, want)
	}
	if got, want := r.Note().PlainText(), "hio"; got != want {
		t.Fatalf("plain=%q, want %q", got, want)
	}
}

func TestReconciler_BackspaceIntoAnnotationDropsIt(t *testing.T) {
	n := mustNote(t, note.Text("at "), note.Annotation(note.KindTime, "3pm", "15:00"))
	r := New(n, nil)
	s := newSurface(n.PlainText(), 6, 6)

	res := step(t, r, s, KeyBackspace, s.backspace)
	if got, want := res.Edit, (Edit{Start: 5, Removed: 1}); got != want {
		t.Fatalf("edit=%+v, want %+v", got, want)
	}
	if _, ok := r.Note().Time(); ok {
		t.Fatalf("expected time annotation to be gone")
	}
	if got := r.Note().Segments(); !reflect.DeepEqual(got, []note.Segment{note.Text("at 3p")}) {
		t.Fatalf("segments=%#v", got)
	}
}

func TestReconciler_BackspaceAtStartIsNoOp(t *testing.T) {
	r := New(mustNote(t, note.Text("abc")), nil)
	s := newSurface("abc", 0, 0)

	res := step(t, r, s, KeyBackspace, s.backspace)
	if got, want := res.Edit, (Edit{}); got != want {
		t.Fatalf("edit=%+v, want zero", got)
	}
}

func TestReconciler_DeleteForward(t *testing.T) {
	n := mustNote(t, note.Text("ab"), note.Annotation(note.KindDate, "cd", "2020-01-01"))
	r := New(n, nil)
	s := newSurface(n.PlainText(), 1, 1)

	res := step(t, r, s, KeyEdit, s.deleteForward)
	if got, want := res.Edit, (Edit{Start: 1, Removed: 1}); got != want {
		t.Fatalf("edit=%+v, want %+v", got, want)
	}
	if v, ok := r.Note().Date(); !ok || v != "2020-01-01" {
		t.Fatalf("date annotation lost: (%q,%v)", v, ok)
	}
}

func TestReconciler_PasteOverSpanningSelection(t *testing.T) {
	n := mustNote(t,
		note.Text("ab"),
		note.Annotation(note.KindDate, "cd", "2020-01-01"),
		note.Text("ef"),
	)
	r := New(n, nil)
	s := newSurface(n.PlainText(), 1, 5)

	step(t, r, s, KeyEdit, func() { s.typeText("XYZ") })
	if got := r.Note().Segments(); !reflect.DeepEqual(got, []note.Segment{note.Text("aXYZf")}) {
		t.Fatalf("segments=%#v", got)
	}
}

func TestReconciler_ExtraShrinkBeyondSelection(t *testing.T) {
	r := New(mustNote(t, note.Text("xabcd")), nil)
	s := newSurface("xabcd", 1, 3)

	// The platform removes the selection and one more character.
	res := step(t, r, s, KeyEdit, func() {
		s.end = 4
		s.typeText("")
	})
	if got, want := res.Edit, (Edit{Start: 1, Removed: 3}); got != want {
		t.Fatalf("edit=%+v, want %+v", got, want)
	}
	if got, want := r.Note().PlainText(), "xd"; got != want {
		t.Fatalf("plain=%q, want %q", got, want)
	}
}

func TestReconciler_NavigationIgnored(t *testing.T) {
	r := New(mustNote(t, note.Text("abc")), nil)
	if got := r.Capture(Snapshot{Text: "abc", SelStart: 1, SelEnd: 1}, KeyNavigation); got != OutcomeIgnored {
		t.Fatalf("outcome=%v, want ignored", got)
	}
	if r.Pending() {
		t.Fatalf("navigation must not leave an edit pending")
	}
}

func TestReconciler_InFlightGuardDefersOneKey(t *testing.T) {
	r := New(mustNote(t, note.Text("ab")), nil)
	s := newSurface("ab", 2, 2)

	if got := r.Capture(s.snapshot(), KeyEdit); got != OutcomeCaptured {
		t.Fatalf("first outcome=%v", got)
	}
	s.typeText("c")
	if got := r.Capture(s.snapshot(), KeyEdit); got != OutcomeDeferred {
		t.Fatalf("second outcome=%v, want deferred", got)
	}
	if got := r.Capture(s.snapshot(), KeyEdit); got != OutcomeDropped {
		t.Fatalf("third outcome=%v, want dropped", got)
	}

	res, err := r.Settle(s.snapshot())
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if !res.Replay {
		t.Fatalf("expected replay of the deferred key")
	}
	if r.Pending() {
		t.Fatalf("expected no pending edit after settle")
	}
	if got := r.Capture(s.snapshot(), KeyEdit); got != OutcomeCaptured {
		t.Fatalf("replayed outcome=%v, want captured", got)
	}
}

func TestReconciler_SettleWithoutCapture(t *testing.T) {
	r := New(note.New(), nil)
	if _, err := r.Settle(Snapshot{}); !errors.Is(err, ErrNoPending) {
		t.Fatalf("err=%v, want ErrNoPending", err)
	}
}

func TestReconciler_ResyncsWhenNoteChangedUnderneath(t *testing.T) {
	n := mustNote(t, note.Text("hello"))
	r := New(n, nil)
	s := newSurface("hello", 5, 5)

	r.Capture(s.snapshot(), KeyEdit)
	n.DeleteChars(0, 2)
	s.typeText("!")

	res, err := r.Settle(s.snapshot())
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if !res.Resynced {
		t.Fatalf("expected resync")
	}
	if got, want := n.PlainText(), "hello!"; got != want {
		t.Fatalf("plain=%q, want %q", got, want)
	}
	if got, want := res.Edit, (Edit{Start: 0, Removed: 3, Inserted: "hello!"}); got != want {
		t.Fatalf("edit=%+v, want %+v", got, want)
	}
}

func TestReconciler_ResetClearsState(t *testing.T) {
	r := New(note.New(), nil)
	r.Capture(Snapshot{}, KeyEdit)
	r.Capture(Snapshot{}, KeyEdit)
	r.Reset()
	if r.Pending() {
		t.Fatalf("pending after reset")
	}
	if got := r.Capture(Snapshot{}, KeyEdit); got != OutcomeCaptured {
		t.Fatalf("outcome after reset=%v", got)
	}
}

func TestDiff(t *testing.T) {
	cases := []struct {
		a, b string
		want Edit
	}{
		{a: "abc", b: "abc", want: Edit{Start: 3}},
		{a: "abc", b: "abXc", want: Edit{Start: 2, Inserted: "X"}},
		{a: "abc", b: "c", want: Edit{Start: 0, Removed: 2}},
		{a: "aaa", b: "aa", want: Edit{Start: 2, Removed: 1}},
	}
	for _, tc := range cases {
		if got := diff([]rune(tc.a), []rune(tc.b)); got != tc.want {
			t.Fatalf("diff(%q,%q)=%+v, want %+v", tc.a, tc.b, got, tc.want)
		}
	}
}

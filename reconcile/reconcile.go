package reconcile

import (
	"errors"
	"log/slog"

	"github.com/iw2rmb/tagnote/note"
)

var ErrNoPending = errors.New("reconcile: no edit pending")

// Key classifies the key event that starts an edit.
type Key uint8

const (
	KeyEdit       Key = iota // anything that may change content
	KeyBackspace             // plain backspace
	KeyNavigation            // tab and arrows: never edits
)

// Snapshot is the surface state at one point in time. Selection offsets are
// rune positions; SelStart == SelEnd is a collapsed caret.
type Snapshot struct {
	Text     string
	SelStart int
	SelEnd   int
}

// Outcome reports what Capture did with a key event.
type Outcome uint8

const (
	// OutcomeIgnored: navigation key, nothing to reconcile.
	OutcomeIgnored Outcome = iota
	// OutcomeCaptured: the surface may apply the edit; call Settle afterwards.
	OutcomeCaptured
	// OutcomeDeferred: an edit is in flight. The surface must not apply this
	// key now; replay it after the pending edit settles.
	OutcomeDeferred
	// OutcomeDropped: an edit is in flight and one key is already deferred.
	OutcomeDropped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeCaptured:
		return "captured"
	case OutcomeDeferred:
		return "deferred"
	case OutcomeDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Edit is the structural change derived from one keystroke.
type Edit struct {
	Start    int
	Removed  int
	Inserted string
}

// Result describes one settled edit.
type Result struct {
	Edit  Edit
	Caret int

	// Replay is set when a deferred key is waiting to be re-dispatched.
	Replay bool

	// Resynced is set when the derived edit did not reproduce the surface
	// text and the note was realigned with a prefix/suffix diff instead.
	Resynced bool
}

type pendingEdit struct {
	before   []rune
	selStart int
	removed  int
}

// Reconciler owns the in-flight state for exactly one note.
type Reconciler struct {
	note   *note.Note
	logger *slog.Logger

	pending  *pendingEdit
	deferred bool
}

// New returns a reconciler bound to n. A nil logger uses slog.Default().
func New(n *note.Note, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{note: n, logger: logger}
}

// Note returns the note being mirrored.
func (r *Reconciler) Note() *note.Note { return r.note }

// Pending reports whether an edit has been captured but not settled.
func (r *Reconciler) Pending() bool { return r.pending != nil }

// Reset drops any in-flight edit and deferred key.
func (r *Reconciler) Reset() {
	r.pending = nil
	r.deferred = false
}

// Capture records the surface state before the key is applied.
func (r *Reconciler) Capture(before Snapshot, key Key) Outcome {
	if key == KeyNavigation {
		return OutcomeIgnored
	}
	if r.pending != nil {
		if r.deferred {
			r.logger.Debug("reconcile: key dropped while edit in flight")
			return OutcomeDropped
		}
		r.deferred = true
		return OutcomeDeferred
	}

	text := []rune(before.Text)
	start, end := orderedSelection(before, len(text))
	if key == KeyBackspace && start == end {
		start = max(start-1, 0)
	}
	r.pending = &pendingEdit{
		before:   text,
		selStart: start,
		removed:  end - start,
	}
	return OutcomeCaptured
}

// Settle diffs the captured snapshot against after and applies the result to
// the note. The caller must have seen OutcomeCaptured first.
func (r *Reconciler) Settle(after Snapshot) (Result, error) {
	p := r.pending
	if p == nil {
		return Result{}, ErrNoPending
	}
	r.pending = nil
	replay := r.deferred
	r.deferred = false

	afterText := []rune(after.Text)
	_, caret := orderedSelection(after, len(afterText))

	res := Result{Caret: caret, Replay: replay}
	if string(p.before) != r.note.PlainText() {
		// The note changed underneath the capture; offsets are meaningless.
		res.Resynced = true
		res.Edit = r.Resync(after.Text)
		return res, nil
	}

	edit := p.derive(afterText)
	r.apply(edit)
	res.Edit = edit
	if r.note.PlainText() != after.Text {
		res.Resynced = true
		r.logger.Warn("reconcile: note diverged from surface, resyncing",
			"start", edit.Start, "removed", edit.Removed, "inserted", len([]rune(edit.Inserted)))
		res.Edit = r.Resync(after.Text)
	}
	return res, nil
}

// Resync realigns the note with text using the smallest single replacement
// that turns the note's plain text into text.
func (r *Reconciler) Resync(text string) Edit {
	edit := diff([]rune(r.note.PlainText()), []rune(text))
	r.apply(edit)
	return edit
}

func (r *Reconciler) apply(e Edit) {
	r.note.DeleteChars(e.Start, e.Removed)
	r.note.InsertChars(e.Start, e.Inserted)
	r.note.Normalize()
}

// derive computes the edit from the captured state and the settled text.
func (p *pendingEdit) derive(after []rune) Edit {
	excised := len(p.before) - p.removed
	net := len(after) - excised

	e := Edit{
		Start:   p.selStart,
		Removed: p.removed + max(0, -net),
	}
	if n := max(0, net); n > 0 {
		end := min(p.selStart+n, len(after))
		if p.selStart < end {
			e.Inserted = string(after[p.selStart:end])
		}
	}
	// The surface may shrink by more than it had before the start.
	e.Removed = min(e.Removed, len(p.before)-p.selStart)
	return e
}

func orderedSelection(s Snapshot, n int) (int, int) {
	start, end := s.SelStart, s.SelEnd
	if start > end {
		start, end = end, start
	}
	return min(max(start, 0), n), min(max(end, 0), n)
}

func diff(a, b []rune) Edit {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	return Edit{
		Start:    prefix,
		Removed:  len(a) - prefix - suffix,
		Inserted: string(b[prefix : len(b)-suffix]),
	}
}

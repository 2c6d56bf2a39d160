// Package reconcile mirrors uncontrolled edits of a plain text surface into
// a note.Note.
//
// An edit is reconciled in two phases. Capture runs synchronously when a key
// event arrives, before the surface applies it, and records the text and
// selection. Settle runs once the surface has applied the native edit and
// derives the minimal delete and insert from the two snapshots.
package reconcile

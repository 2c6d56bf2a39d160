// Package editor provides a Bubble Tea note input backed by the note package.
//
// The component keeps a plain text surface (runes plus selection) and mirrors
// every edit into a note.Note through a reconcile.Reconciler. Typing a
// registered trigger symbol followed by enough characters opens a suggestion
// popup fed by a suggest.Dispatcher; accepting a suggestion turns the token
// into an annotation segment.
package editor

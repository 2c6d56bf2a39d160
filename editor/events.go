package editor

import (
	"github.com/iw2rmb/tagnote/note"
	"github.com/iw2rmb/tagnote/reconcile"
)

// ChangeEvent is delivered to Config.OnChange. It carries both renderer
// inputs: the plain text for the editable surface and the annotated form.
type ChangeEvent struct {
	Version  uint64
	Text     string
	HTML     string
	Segments []note.Segment
	Caret    int

	Edit     reconcile.Edit
	Resynced bool
}

func buildChangeEvent(n *note.Note, caret int, edit reconcile.Edit, resynced bool) ChangeEvent {
	return ChangeEvent{
		Version:  n.Version(),
		Text:     n.PlainText(),
		HTML:     n.HTML(),
		Segments: n.Segments(),
		Caret:    caret,
		Edit:     edit,
		Resynced: resynced,
	}
}

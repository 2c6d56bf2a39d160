package editor

import "github.com/atotto/clipboard"

// Clipboard provides paste support. Errors never reach the UI; a failed read
// pastes nothing.
type Clipboard interface {
	ReadText() (string, error)
}

// SystemClipboard reads the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

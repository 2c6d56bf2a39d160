package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/tagnote/note"
)

// exampleNote is the note shown when nothing else is given.
func exampleNote() *note.Note {
	n, err := note.FromSegments([]note.Segment{
		note.Text("Hey "),
		note.Annotation(note.KindUser, "max", 12),
		note.Text(", could you fix that bug "),
		note.Annotation(note.KindDate, "tomorrow", "2013-11-30"),
		note.Text(" before "),
		note.Annotation(note.KindTime, "3pm", "15:00"),
		note.Text("?"),
	})
	if err != nil {
		panic(err)
	}
	return n
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// loadNote reads a JSON or YAML note, picked by file extension.
func loadNote(path string) (*note.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}
	n := note.New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, n)
	} else {
		err = json.Unmarshal(data, n)
	}
	if err != nil {
		return nil, fmt.Errorf("decode note %s: %w", path, err)
	}
	return n, nil
}

// openNote resolves the note to edit: path if it exists, an empty note if
// path names a file yet to be created, else the configured seed or the
// example note.
func openNote(path, seed string) (*note.Note, error) {
	if path != "" {
		n, err := loadNote(path)
		if errors.Is(err, os.ErrNotExist) {
			return note.New(), nil
		}
		return n, err
	}
	if seed != "" {
		return loadNote(seed)
	}
	return exampleNote(), nil
}

func encodeNote(n *note.Note, asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(n)
	}
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func saveNote(path string, n *note.Note) error {
	data, err := encodeNote(n, isYAML(path))
	if err != nil {
		return fmt.Errorf("encode note: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}

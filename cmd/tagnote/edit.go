package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/tagnote/editor"
)

// EditCmd runs the interactive editor.
type EditCmd struct {
	Note string `arg:"" optional:"" type:"path" help:"Note file (.json, .yaml). Written back on exit."`
	Log  string `type:"path" default:"${logfile}" help:"Log file; the terminal is taken by the editor."`
}

func (cmd *EditCmd) Run(g *Globals) error {
	closeLog, err := setupFileLogger(cmd.Log, g.Debug)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := slog.Default()

	n, err := openNote(cmd.Note, g.Config.Seed)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	disp, closeSources, err := buildDispatcher(ctx, g.Config, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSources(); err != nil {
			logger.Warn("tagnote: closing sources", "error", err)
		}
	}()

	ed := editor.New(editor.Config{
		Note:           n,
		Dispatcher:     disp,
		MinQuery:       g.Config.MinQuery,
		MaxSuggestions: g.Config.MaxSuggestions,
		Placeholder:    "Type a note; @ for people, # for dossiers",
		Style:          editor.DefaultStyle().WithKindColors(g.Config.Styles),
		Clipboard:      editor.SystemClipboard{},
		Logger:         logger,
		OnChange: func(ev editor.ChangeEvent) {
			logger.Debug("tagnote: note changed",
				"version", ev.Version, "caret", ev.Caret,
				"start", ev.Edit.Start, "removed", ev.Edit.Removed, "inserted", ev.Edit.Inserted,
				"resynced", ev.Resynced)
		},
	})

	if _, err := tea.NewProgram(newApp(ed)).Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if cmd.Note != "" {
		if err := saveNote(cmd.Note, n); err != nil {
			return err
		}
		logger.Info("tagnote: note saved", "path", cmd.Note, "version", n.Version())
	}
	data, err := encodeNote(n, false)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

type appKeys struct {
	Quit  key.Binding
	Focus key.Binding
}

var keys = appKeys{
	Quit:  key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	Focus: key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i", "edit")),
}

var helpStyle = lipgloss.NewStyle().Faint(true)

// app wraps the editor with focus and quit handling.
type app struct {
	editor editor.Model
}

func newApp(ed editor.Model) app { return app{editor: ed} }

func (a app) Init() tea.Cmd { return a.editor.Init() }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return a, tea.Quit
		case !a.editor.Focused() && key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case !a.editor.Focused() && key.Matches(msg, keys.Focus):
			a.editor = a.editor.Focus()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a app) View() string {
	help := "esc: leave editor · ctrl+c: quit"
	if !a.editor.Focused() {
		f, q := keys.Focus.Help(), keys.Quit.Help()
		help = fmt.Sprintf("%s: %s · %s: %s", f.Key, f.Desc, q.Key, q.Desc)
	}
	return a.editor.View() + "\n\n" + helpStyle.Render(help)
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/iw2rmb/tagnote"
	"github.com/iw2rmb/tagnote/config"
)

// CLI is the top-level command structure for tagnote.
type CLI struct {
	Debug   bool             `env:"TAGNOTE_DEBUG" help:"Enable debug logging."`
	Config  string           `short:"c" type:"path" env:"TAGNOTE_CONFIG" help:"Path to the YAML configuration file."`
	Version kong.VersionFlag `help:"Print the version and exit."`

	Edit   EditCmd   `cmd:"" default:"withargs" help:"Edit a note in the terminal."`
	Render RenderCmd `cmd:"" help:"Print a stored note as text, HTML, JSON, YAML or its values."`
	Import ImportCmd `cmd:"" help:"Load suggestion candidates from YAML into a SQLite store."`
}

// Globals are bound into every command's Run.
type Globals struct {
	Debug  bool
	Config *config.Config
}

func main() {
	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name("tagnote"),
		kong.Description("A note editor with @people, #dossier, date and time annotations."),
		kong.UsageOnError(),
		kong.Vars{
			"version": tagnote.Version(),
			"logfile": filepath.Join(os.TempDir(), "tagnote.log"),
		},
		kong.Exit(func(code int) {
			os.Exit(code)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tagnote: %v\n", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	setupLogger(cli.Debug)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)
	ctx.Bind(&Globals{Debug: cli.Debug, Config: cfg})

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// setupFileLogger redirects slog to a file; the terminal belongs to the
// editor while it runs. An empty path discards logs.
func setupFileLogger(path string, debug bool) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: level,
	})))
	return func() { _ = f.Close() }, nil
}

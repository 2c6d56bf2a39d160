package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/tagnote/config"
	"github.com/iw2rmb/tagnote/note"
	"github.com/iw2rmb/tagnote/suggest"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestBuildDispatcher_Defaults(t *testing.T) {
	ctx := context.Background()
	disp, closeFn, err := buildDispatcher(ctx, config.Default(), discardLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	require.ElementsMatch(t, []rune{'@', '#'}, disp.Symbols())

	res := disp.Lookup(ctx, '@', "bru")
	require.Equal(t, note.KindUser, res.Kind)
	require.Len(t, res.Candidates, 3)

	res = disp.Lookup(ctx, '#', "he")
	require.Equal(t, note.KindDossier, res.Kind)
	require.Len(t, res.Candidates, 1)
	require.Equal(t, "hero", res.Candidates[0].Label)
}

func TestBuildDispatcher_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "people.db")

	store, err := suggest.OpenSQLite(path, 0)
	require.NoError(t, err)
	require.NoError(t, store.Seed(ctx, []suggest.Candidate{
		{Label: "lois lane", Value: "ll"},
		{Label: "lex luthor", Value: "lx"},
	}))
	require.NoError(t, store.Close())

	cfg := config.Default()
	cfg.Triggers = map[string]config.Trigger{
		"@": {Kind: "user", Source: config.SourceSQLite, Path: path},
	}
	require.NoError(t, cfg.Validate())

	disp, closeFn, err := buildDispatcher(ctx, cfg, discardLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	res := disp.Lookup(ctx, '@', "lo")
	require.Len(t, res.Candidates, 1)
	require.Equal(t, "lois lane", res.Candidates[0].Label)
}

func TestBuildDispatcher_MissingFileFails(t *testing.T) {
	cfg := config.Default()
	cfg.Triggers = map[string]config.Trigger{
		"@": {Kind: "user", Source: config.SourceFile, Path: filepath.Join(t.TempDir(), "missing.yaml")},
	}
	_, _, err := buildDispatcher(context.Background(), cfg, discardLogger())
	require.Error(t, err)
}

package main

import (
	"context"
	"fmt"

	"github.com/iw2rmb/tagnote/suggest"
)

// ImportCmd seeds a SQLite candidate store from a YAML list.
type ImportCmd struct {
	Candidates string `arg:"" type:"existingfile" help:"YAML list of {label, value, detail}."`
	DB         string `arg:"" type:"path" help:"SQLite database to fill (created if missing)."`
}

func (cmd *ImportCmd) Run(g *Globals) error {
	items, err := suggest.ReadCandidates(cmd.Candidates)
	if err != nil {
		return err
	}
	store, err := suggest.OpenSQLite(cmd.DB, g.Config.MaxSuggestions)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Seed(context.Background(), items); err != nil {
		return fmt.Errorf("import %s: %w", cmd.Candidates, err)
	}
	fmt.Printf("imported %d candidates into %s\n", len(items), cmd.DB)
	return nil
}

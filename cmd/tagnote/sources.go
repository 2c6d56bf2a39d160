package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iw2rmb/tagnote"
	"github.com/iw2rmb/tagnote/config"
	"github.com/iw2rmb/tagnote/note"
	"github.com/iw2rmb/tagnote/suggest"
)

// buildDispatcher registers one source per configured trigger. File sources
// are watched until ctx is done. The returned close func releases stores.
func buildDispatcher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*suggest.Dispatcher, func() error, error) {
	disp := suggest.NewDispatcher(suggest.Options{
		Timeout: cfg.LookupTimeout,
		Limit:   cfg.MaxSuggestions,
		Logger:  logger,
	})

	var closers []func() error
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	for _, sym := range cfg.Symbols() {
		t := cfg.Triggers[sym]
		symbol := []rune(sym)[0]

		var src suggest.Source
		switch t.Source {
		case config.SourceMemory:
			src = suggest.NewMemory(candidates(t.Items)...)
		case config.SourceFile:
			fs, err := suggest.LoadFile(t.Path, logger)
			if err != nil {
				_ = closeAll()
				return nil, nil, fmt.Errorf("trigger %q: %w", sym, err)
			}
			if _, err := fs.Watch(ctx); err != nil {
				logger.Warn("tagnote: cannot watch candidates file", "path", fs.Path(), "error", err)
			}
			src = fs
		case config.SourceSQLite:
			store, err := suggest.OpenSQLite(t.Path, cfg.MaxSuggestions)
			if err != nil {
				_ = closeAll()
				return nil, nil, fmt.Errorf("trigger %q: %w", sym, err)
			}
			closers = append(closers, store.Close)
			src = store
		case config.SourceHTTP:
			src = &suggest.HTTP{
				Endpoint:  t.URL,
				Results:   t.Results,
				Label:     t.Label,
				Value:     t.Value,
				Detail:    t.Detail,
				UserAgent: tagnote.UserAgent(),
				Client:    &http.Client{Timeout: cfg.LookupTimeout},
			}
		default:
			_ = closeAll()
			return nil, nil, fmt.Errorf("%w: trigger %q: unknown source %q", config.ErrInvalid, sym, t.Source)
		}

		if err := disp.Register(symbol, note.Kind(t.Kind), src); err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		logger.Debug("tagnote: trigger registered", "symbol", sym, "kind", t.Kind, "source", t.Source)
	}
	return disp, closeAll, nil
}

func candidates(items []config.Item) []suggest.Candidate {
	out := make([]suggest.Candidate, 0, len(items))
	for _, it := range items {
		out = append(out, suggest.Candidate{Label: it.Label, Value: it.Value, Detail: it.Detail})
	}
	return out
}

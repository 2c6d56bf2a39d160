package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iw2rmb/tagnote/note"
)

var ErrDuplicateSymbol = errors.New("suggest: trigger symbol already registered")

const defaultLimit = 20

// Options configures a Dispatcher.
type Options struct {
	// Timeout bounds each lookup. Zero means no timeout.
	Timeout time.Duration
	// Limit caps the candidates per result. Zero selects 20.
	Limit  int
	Logger *slog.Logger
}

// Result is the outcome of one lookup. Seq increases with every lookup
// issued by a Dispatcher, so hosts can drop results that arrive late.
type Result struct {
	Seq        uint64
	Symbol     rune
	Kind       note.Kind
	Query      string
	Candidates []Candidate
}

type registration struct {
	kind   note.Kind
	source Source
}

// Dispatcher routes queries by trigger symbol.
type Dispatcher struct {
	mu      sync.RWMutex
	sources map[rune]registration
	order   []rune

	seq atomic.Uint64

	timeout time.Duration
	limit   int
	logger  *slog.Logger
}

func NewDispatcher(opt Options) *Dispatcher {
	if opt.Limit <= 0 {
		opt.Limit = defaultLimit
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &Dispatcher{
		sources: make(map[rune]registration),
		timeout: opt.Timeout,
		limit:   opt.Limit,
		logger:  opt.Logger,
	}
}

// Register binds symbol to src. Accepted candidates become segments of kind.
func (d *Dispatcher) Register(symbol rune, kind note.Kind, src Source) error {
	if src == nil {
		return fmt.Errorf("suggest: nil source for %q", symbol)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.sources[symbol]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSymbol, symbol)
	}
	d.sources[symbol] = registration{kind: kind, source: src}
	d.order = append(d.order, symbol)
	return nil
}

// Symbols returns the registered trigger symbols in registration order.
func (d *Dispatcher) Symbols() []rune {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.order)
}

// Next reserves the sequence number for the next lookup.
func (d *Dispatcher) Next() uint64 { return d.seq.Add(1) }

// Latest returns the most recently reserved sequence number.
func (d *Dispatcher) Latest() uint64 { return d.seq.Load() }

// Lookup reserves a sequence number and runs the query.
func (d *Dispatcher) Lookup(ctx context.Context, symbol rune, query string) Result {
	return d.LookupSeq(ctx, d.Next(), symbol, query)
}

// LookupSeq runs the query under a sequence number reserved with Next.
// Unknown symbols and failing sources produce a result without candidates.
func (d *Dispatcher) LookupSeq(ctx context.Context, seq uint64, symbol rune, query string) Result {
	res := Result{Seq: seq, Symbol: symbol, Query: query}

	d.mu.RLock()
	reg, ok := d.sources[symbol]
	d.mu.RUnlock()
	if !ok {
		return res
	}
	res.Kind = reg.kind

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	cands, err := d.safeLookup(ctx, reg.source, query)
	if err != nil {
		d.logger.Warn("suggest: lookup failed",
			"symbol", string(symbol), "query", query, "seq", seq, "error", err)
		return res
	}
	if len(cands) > d.limit {
		cands = cands[:d.limit]
	}
	res.Candidates = cands
	d.logger.Debug("suggest: lookup",
		"symbol", string(symbol), "query", query, "seq", seq,
		"candidates", len(cands), "elapsed", time.Since(start))
	return res
}

type lookupResult struct {
	cands []Candidate
	err   error
}

// safeLookup runs src in its own goroutine so a source that ignores ctx
// cannot hold the caller past the deadline.
func (d *Dispatcher) safeLookup(ctx context.Context, src Source, query string) ([]Candidate, error) {
	done := make(chan lookupResult, 1)
	go func() {
		cands, err := callSource(ctx, src, query)
		done <- lookupResult{cands: cands, err: err}
	}()
	select {
	case r := <-done:
		if r.err == nil && ctx.Err() != nil {
			r.err = ctx.Err()
		}
		return r.cands, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func callSource(ctx context.Context, src Source, query string) (cands []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panic: %v", r)
		}
	}()
	return src.Lookup(ctx, query)
}

package suggest

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Memory filters a fixed candidate set in process. A candidate matches when
// any whitespace-separated word of its label starts with the query, ignoring
// case.
type Memory struct {
	mu    sync.RWMutex
	items []Candidate
}

func NewMemory(items ...Candidate) *Memory {
	return &Memory{items: slices.Clone(items)}
}

// Replace swaps the candidate set.
func (m *Memory) Replace(items []Candidate) {
	m.mu.Lock()
	m.items = slices.Clone(items)
	m.mu.Unlock()
}

// Len returns the number of candidates held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory) Lookup(ctx context.Context, query string) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Candidate
	for _, c := range m.items {
		if matchWordPrefix(c.Label, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

func matchWordPrefix(label, query string) bool {
	q := strings.ToLower(query)
	for _, w := range strings.Fields(strings.ToLower(label)) {
		if strings.HasPrefix(w, q) {
			return true
		}
	}
	return false
}

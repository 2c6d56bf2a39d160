package suggest

import "context"

// Candidate is one suggestion offered for a query.
type Candidate struct {
	Label  string `json:"label" yaml:"label"`
	Value  any    `json:"value" yaml:"value"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Source looks up candidates for a query. Implementations must be safe for
// concurrent use and should honour ctx cancellation.
type Source interface {
	Lookup(ctx context.Context, query string) ([]Candidate, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, query string) ([]Candidate, error)

func (f SourceFunc) Lookup(ctx context.Context, query string) ([]Candidate, error) {
	return f(ctx, query)
}

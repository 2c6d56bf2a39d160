package suggest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// HTTP queries a remote JSON endpoint. The query is sent as the "query"
// URL parameter; candidates are extracted from the response with gjson
// paths.
type HTTP struct {
	Endpoint string
	// Results selects the array of items, e.g. "data.users". Empty means the
	// document root.
	Results string
	// Label, Value and Detail select fields relative to each item.
	Label  string
	Value  string
	Detail string

	UserAgent string
	Client    *http.Client
}

func (h *HTTP) Lookup(ctx context.Context, query string) ([]Candidate, error) {
	u, err := url.Parse(h.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid json response")
	}

	items := gjson.ParseBytes(body)
	if h.Results != "" {
		items = items.Get(h.Results)
	}

	var out []Candidate
	items.ForEach(func(_, item gjson.Result) bool {
		label := item.Get(h.pathOr(h.Label, "label")).String()
		if label == "" {
			return true
		}
		out = append(out, Candidate{
			Label:  label,
			Value:  item.Get(h.pathOr(h.Value, "value")).Value(),
			Detail: item.Get(h.pathOr(h.Detail, "detail")).String(),
		})
		return true
	})
	return out, nil
}

func (h *HTTP) pathOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}

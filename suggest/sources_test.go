package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Label)
	}
	return out
}

func TestMemory_WordPrefix(t *testing.T) {
	m := users()
	got, err := m.Lookup(context.Background(), "WA")
	require.NoError(t, err)
	assert.Equal(t, []string{"bruce wayne"}, labels(got))

	got, err = m.Lookup(context.Background(), "ent")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_SeedAndLookup(t *testing.T) {
	s, err := OpenSQLite(":memory:", 10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, []Candidate{
		{Label: "bruce lee", Value: 2, Detail: "actor"},
		{Label: "clark kent", Value: 1},
		{Label: "bruce wayne", Value: 4},
		{Label: "100% hero", Value: 9},
	}))

	got, err := s.Lookup(ctx, "bru")
	require.NoError(t, err)
	assert.Equal(t, []string{"bruce lee", "bruce wayne"}, labels(got))
	assert.Equal(t, "2", got[0].Value)
	assert.Equal(t, "actor", got[0].Detail)

	got, err = s.Lookup(ctx, "kent")
	require.NoError(t, err)
	assert.Equal(t, []string{"clark kent"}, labels(got))

	got, err = s.Lookup(ctx, "100%")
	require.NoError(t, err)
	assert.Equal(t, []string{"100% hero"}, labels(got))
}

func TestHTTP_ExtractsWithPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bo", r.URL.Query().Get("query"))
		assert.Equal(t, "tagnote-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"people":[
			{"name":"bob","id":7,"team":"core"},
			{"name":"","id":8},
			{"name":"bonnie","id":9}
		]}}`))
	}))
	defer srv.Close()

	h := &HTTP{Endpoint: srv.URL + "/people", Results: "data.people", Label: "name", Value: "id", Detail: "team", UserAgent: "tagnote-test"}
	got, err := h.Lookup(context.Background(), "bo")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "bonnie"}, labels(got))
	assert.Equal(t, float64(7), got[0].Value)
	assert.Equal(t, "core", got[0].Detail)
}

func TestHTTP_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := (&HTTP{Endpoint: srv.URL}).Lookup(context.Background(), "x")
	assert.Error(t, err)
}

func TestFileSource_LoadAndWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dossiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- label: hero\n  value: 1\n"), 0o644))

	fs, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, fs.Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded, err := fs.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("- label: hero\n  value: 1\n- label: actor\n  value: 2\n"), 0o644))

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	got, err := fs.Lookup(context.Background(), "act")
	require.NoError(t, err)
	assert.Equal(t, []string{"actor"}, labels(got))

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-reloaded
		return !open
	}, 5*time.Second, 10*time.Millisecond)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("label: [unclosed"), 0o644))
	_, err := LoadFile(path, nil)
	assert.Error(t, err)
}

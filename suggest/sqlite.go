package suggest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	label  TEXT NOT NULL,
	value  TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS entries_label ON entries(label);
`

// SQLite serves candidates from an "entries" table in a SQLite database.
type SQLite struct {
	db    *sql.DB
	limit int
}

// OpenSQLite opens (or creates) the directory database at path.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string, limit int) (*SQLite, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// An in-memory database lives on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return &SQLite{db: db, limit: limit}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// Seed inserts candidates in one transaction.
func (s *SQLite) Seed(ctx context.Context, items []Candidate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (label, value, detail) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range items {
		if _, err := stmt.ExecContext(ctx, c.Label, fmt.Sprint(c.Value), c.Detail); err != nil {
			return fmt.Errorf("insert %q: %w", c.Label, err)
		}
	}
	return tx.Commit()
}

// Lookup matches labels whose first word, or any later word, starts with
// query. LIKE is case-insensitive for ASCII in SQLite.
func (s *SQLite) Lookup(ctx context.Context, query string) ([]Candidate, error) {
	pattern := escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT label, value, detail FROM entries
		WHERE label LIKE ? ESCAPE '\' OR label LIKE ? ESCAPE '\'
		ORDER BY label, id
		LIMIT ?`, pattern, "% "+pattern, s.limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		var value string
		if err := rows.Scan(&c.Label, &value, &c.Detail); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		c.Value = value
		out = append(out, c)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// pragmas are applied to every connection before the schema.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
}

// migrations[i] upgrades a database at user_version i to i+1.
var migrations = []string{
	`CREATE INDEX IF NOT EXISTS idx_prefs_kind ON prefs(kind)`,
}

// Store is the durable SQLite implementation of KV.
type Store struct {
	db *sql.DB
}

var _ KV = (*Store)(nil)

// Open opens or creates the preference database at path and brings its
// schema up to date. Opening an existing database is a no-op apart from
// pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One writer; a single pooled connection also keeps ":memory:" stable.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := prepare(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func prepare(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return migrate(db)
}

// migrate runs every migration above the stored user_version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	for v := version; v < len(migrations); v++ {
		if _, err := db.Exec(migrations[v]); err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
	}
	if version < len(migrations) {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
			return fmt.Errorf("write user_version: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get reads the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (Value, bool, error) {
	var kind, text string
	err := s.db.QueryRowContext(ctx, `SELECT kind, value FROM prefs WHERE key = ?`, key).Scan(&kind, &text)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Value{}, false, nil
	case err != nil:
		return Value{}, false, fmt.Errorf("get %q: %w", key, err)
	}
	v, err := decodeValue(Kind(kind), text)
	if err != nil {
		return Value{}, false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

// Keys returns every key starting with prefix, in ascending byte order.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM prefs WHERE substr(key, 1, ?) = ? ORDER BY key COLLATE BINARY`,
		len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("keys %q: %w", prefix, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("keys %q: %w", prefix, err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Apply executes the batch in one transaction.
func (s *Store) Apply(ctx context.Context, b *Batch) error {
	if b == nil || b.Len() == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	defer tx.Rollback()

	for _, o := range b.ops {
		if err := applyOp(ctx, tx, o); err != nil {
			return fmt.Errorf("apply %q: %w", o.key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply: commit: %w", err)
	}
	return nil
}

func applyOp(ctx context.Context, tx *sql.Tx, o op) error {
	if o.delete {
		_, err := tx.ExecContext(ctx, `DELETE FROM prefs WHERE key = ?`, o.key)
		return err
	}
	text, err := encodeValue(o.value)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO prefs (key, kind, value) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, value = excluded.value`,
		o.key, string(o.value.Kind), text)
	return err
}

// pragma reads a pragma value; tests use it to check configuration.
func (s *Store) pragma(name string) (string, error) {
	var value string
	err := s.db.QueryRow("PRAGMA " + name).Scan(&value)
	return strings.ToLower(value), err
}

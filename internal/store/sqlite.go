package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/giantswarm/serverconf/internal/document"
)

//go:embed schema.sql
var schemaSQL string

// SQLite stores documents as JSON in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Load implements Store.
func (s *SQLite) Load(ctx context.Context, serverName string) (*document.ServerConfig, error) {
	var (
		rev  int64
		data string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT revision, document FROM server_configs WHERE server_name = ?`, serverName,
	).Scan(&rev, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query server %s: %w", serverName, err)
	}

	var doc document.ServerConfig
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode server %s: %w", serverName, err)
	}
	doc.Revision = formatRevision(rev)
	return &doc, nil
}

// Save implements Store.
func (s *SQLite) Save(ctx context.Context, doc *document.ServerConfig) error {
	expected, err := parseRevision(doc.Revision)
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode server %s: %w", doc.ServerName, err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var res sql.Result
	if expected == 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO server_configs (server_name, revision, document, updated_at)
			 VALUES (?, 1, ?, ?)
			 ON CONFLICT(server_name) DO NOTHING`,
			doc.ServerName, string(data), now)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE server_configs SET revision = revision + 1, document = ?, updated_at = ?
			 WHERE server_name = ? AND revision = ?`,
			string(data), now, doc.ServerName, expected)
	}
	if err != nil {
		return fmt.Errorf("failed to write server %s: %w", doc.ServerName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to write server %s: %w", doc.ServerName, err)
	}
	if n == 0 {
		return ErrConflict
	}
	doc.Revision = formatRevision(expected + 1)
	return nil
}

// List implements Store.
func (s *SQLite) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT server_name FROM server_configs ORDER BY server_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan server name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close implements Store.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Package postgres calls the similarity procedure over a direct Postgres connection.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/kailas-cloud/postsearch/internal/db"
)

// Compile-time check: Store implements db.Matcher.
var _ db.Matcher = (*Store)(nil)

// Config holds Postgres connection settings.
type Config struct {
	DSN       string
	Schema    string // empty uses the connection search_path
	Procedure string
}

// Store implements db.Matcher via database/sql and lib/pq.
type Store struct {
	db        *sql.DB
	procedure string
	query     string
}

// NewStore opens a connection pool. The connection is verified lazily; use WaitForReady.
func NewStore(cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	if cfg.Procedure == "" {
		return nil, fmt.Errorf("procedure is required")
	}

	conn, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Read-only workload with one query per request.
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(2 * time.Hour)
	conn.SetConnMaxIdleTime(15 * time.Minute)

	return NewFromDB(conn, cfg.Schema, cfg.Procedure), nil
}

// NewFromDB wraps an existing pool.
func NewFromDB(conn *sql.DB, schema, procedure string) *Store {
	return &Store{
		db:        conn,
		procedure: procedure,
		query:     matchQuery(schema, procedure),
	}
}

func matchQuery(schema, procedure string) string {
	fn := pq.QuoteIdentifier(procedure)
	if schema != "" {
		fn = pq.QuoteIdentifier(schema) + "." + fn
	}
	return `SELECT id::text, title, "text", similarity FROM ` + fn +
		`(query_embedding => $1, match_count => $2)`
}

// Backend implements db.Matcher.
func (s *Store) Backend() string { return "postgres" }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := s.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// MatchPosts runs the similarity procedure with the query vector.
func (s *Store) MatchPosts(ctx context.Context, embedding []float32, count int) ([]db.PostRow, error) {
	rows, err := s.db.QueryContext(ctx, s.query, pgvector.NewVector(embedding), count)
	if err != nil {
		return nil, s.wrap(db.OpQuery, err)
	}
	defer func() { _ = rows.Close() }()

	out := []db.PostRow{}
	for rows.Next() {
		var r db.PostRow
		var id, title, text sql.NullString
		var similarity sql.NullFloat64
		if err := rows.Scan(&id, &title, &text, &similarity); err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		r.ID = id.String
		r.Title = title.String
		r.Text = text.String
		r.Similarity = similarity.Float64
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap(db.OpScan, err)
	}
	return out, nil
}

// wrap maps server-side errors to db.RPCError and keeps the rest as db.Error.
func (s *Store) wrap(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &db.RPCError{
			Procedure: s.procedure,
			Code:      string(pqErr.Code),
			Message:   pqErr.Message,
			Details:   pqErr.Detail,
			Hint:      pqErr.Hint,
		}
	}
	return &db.Error{Op: op, Err: err}
}

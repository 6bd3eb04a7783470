package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// dialect guarda as consultas de cada driver; placeholders diferem entre pq e sqlite
type dialect struct {
	name   string
	create string
	get    string
	upsert string
	delete string
}

var postgresDialect = dialect{
	name: "postgres",
	create: `
		CREATE TABLE IF NOT EXISTS kv_store (
		  key        TEXT PRIMARY KEY,
		  value      TEXT NOT NULL,
		  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	get: `SELECT value FROM kv_store WHERE key = $1`,
	upsert: `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
		  value      = EXCLUDED.value,
		  updated_at = EXCLUDED.updated_at`,
	delete: `DELETE FROM kv_store WHERE key = $1`,
}

var sqliteDialect = dialect{
	name: "sqlite",
	create: `
		CREATE TABLE IF NOT EXISTS kv_store (
		  key        TEXT PRIMARY KEY,
		  value      TEXT NOT NULL,
		  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	get: `SELECT value FROM kv_store WHERE key = ?`,
	upsert: `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
		  value      = excluded.value,
		  updated_at = excluded.updated_at`,
	delete: `DELETE FROM kv_store WHERE key = ?`,
}

// SQL implementa KV sobre uma tabela kv_store (Postgres ou SQLite)
type SQL struct {
	db *sql.DB
	d  dialect
}

// NewPostgres retorna o KV sobre Postgres (driver lib/pq)
func NewPostgres(db *sql.DB) *SQL { return &SQL{db: db, d: postgresDialect} }

// NewSQLite retorna o KV sobre SQLite (driver modernc.org/sqlite)
func NewSQLite(db *sql.DB) *SQL { return &SQL{db: db, d: sqliteDialect} }

// Migrate cria a tabela kv_store se ainda não existir
func (s *SQL) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.d.create); err != nil {
		return fmt.Errorf("%s migrate kv_store: %w", s.d.name, err)
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, s.d.get, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Set substitui o valor inteiro; o histórico depende dessa semântica de replace
func (s *SQL) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.d.upsert, key, value)
	return err
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.d.delete, key)
	return err
}

func (s *SQL) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	upSuffix   = "_up.sql"
	downSuffix = "_down.sql"
)

// Migrator aplica migraciones *_up.sql / *_down.sql y registra las aplicadas en schema_migrations.
type Migrator struct {
	pool *pgxpool.Pool
	fsys fs.FS
}

// NewMigrator construye el migrador sobre un FS (normalmente migrations/postgres.FS).
func NewMigrator(pool *pgxpool.Pool, fsys fs.FS) *Migrator {
	return &Migrator{pool: pool, fsys: fsys}
}

// Up aplica las migraciones pendientes en orden ascendente. steps <= 0 aplica todas.
// Devuelve las versiones aplicadas.
func (m *Migrator) Up(ctx context.Context, steps int) ([]string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	versions, err := listMigrations(m.fsys, upSuffix)
	if err != nil {
		return nil, err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]string, 0, len(versions))
	for _, v := range versions {
		if !applied[v] {
			pending = append(pending, v)
		}
	}
	if steps > 0 && steps < len(pending) {
		pending = pending[:steps]
	}
	for _, v := range pending {
		err := m.exec(ctx, v+upSuffix, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, v)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return pending, nil
}

// Down revierte las últimas migraciones aplicadas. steps <= 0 revierte solo la última.
func (m *Migrator) Down(ctx context.Context, steps int) ([]string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(applied))
	for v := range applied {
		versions = append(versions, v)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))
	if steps <= 0 {
		steps = 1
	}
	if steps < len(versions) {
		versions = versions[:steps]
	}
	for _, v := range versions {
		err := m.exec(ctx, v+downSuffix, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, v)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return versions, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration: %w", err)
		}
		out[v] = true
	}
	return out, rows.Err()
}

// exec ejecuta el archivo y el registro de versión en la misma transacción.
func (m *Migrator) exec(ctx context.Context, file string, record func(pgx.Tx) error) error {
	sql, err := fs.ReadFile(m.fsys, file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("exec %s: %w", file, err)
	}
	if err := record(tx); err != nil {
		return fmt.Errorf("record %s: %w", file, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", file, err)
	}
	return nil
}

// listMigrations devuelve las versiones (nombre sin sufijo) ordenadas ascendentemente.
func listMigrations(fsys fs.FS, suffix string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), suffix))
	}
	sort.Strings(out)
	return out, nil
}

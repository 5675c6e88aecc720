package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"toolsail-backend/pkg/logger"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate áp dụng các file schema/*.sql chưa chạy, theo thứ tự tên file.
// Mỗi file chạy trong một transaction riêng và được ghi vào schema_migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	var applied []string
	for _, file := range files {
		var exists bool
		if err := pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, file,
		).Scan(&exists); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", file, err)
		}
		if exists {
			continue
		}

		body, err := schemaFS.ReadFile(file)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(body)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, file)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", file, err)
		}

		logger.Info("Migration applied", map[string]interface{}{"version": file})
		applied = append(applied, file)
	}

	return applied, nil
}

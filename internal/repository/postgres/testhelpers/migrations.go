package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// migrationFiles возвращает файлы с суффиксом suffix в порядке номеров
func migrationFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func execFile(ctx context.Context, db *sqlx.DB, dir, name string) error {
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	return tx.Commit()
}

// ApplyMigrations применяет все *.up.sql из dir, каждый в своей транзакции
func ApplyMigrations(ctx context.Context, db *sqlx.DB, dir string) error {
	names, err := migrationFiles(dir, ".up.sql")
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := execFile(ctx, db, dir, name); err != nil {
			return err
		}
	}
	return nil
}

// RollbackMigrations применяет *.down.sql в обратном порядке
func RollbackMigrations(ctx context.Context, db *sqlx.DB, dir string) error {
	names, err := migrationFiles(dir, ".down.sql")
	if err != nil {
		return err
	}
	for i := len(names) - 1; i >= 0; i-- {
		if err := execFile(ctx, db, dir, names[i]); err != nil {
			return err
		}
	}
	return nil
}

package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
)

// LoadFixtures выполняет SQL-файлы фикстур по порядку
func LoadFixtures(ctx context.Context, db *sqlx.DB, dir string, files ...string) error {
	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", name, err)
		}
	}
	return nil
}

// CountRecords - число строк в waste_records
func CountRecords(ctx context.Context, db *sqlx.DB) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM waste_records"); err != nil {
		return 0, fmt.Errorf("count waste_records: %w", err)
	}
	return n, nil
}

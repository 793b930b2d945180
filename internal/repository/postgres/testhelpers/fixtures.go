package testhelpers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
)

// LoadFixtures выполняет SQL-фикстуры из dir в одной транзакции
func (tdb *TestDB) LoadFixtures(ctx context.Context, dir string, files ...string) error {
	fsys := os.DirFS(dir)

	tx, err := tdb.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin fixtures tx: %w", err)
	}
	defer tx.Rollback()

	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return tx.Commit()
}

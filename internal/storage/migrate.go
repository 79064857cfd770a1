package storage

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

type migrationFile struct {
	name string
	data []byte
}

// Migrate executes the embedded schema files in name order. Every file is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	files, err := loadMigrations()
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(files))
	for _, mf := range files {
		if len(mf.data) == 0 {
			continue
		}
		if _, err := pool.Exec(ctx, string(mf.data)); err != nil {
			return applied, fmt.Errorf("exec migration %s: %w", mf.name, err)
		}
		applied = append(applied, mf.name)
	}
	return applied, nil
}

func loadMigrations() ([]migrationFile, error) {
	entries, err := embeddedMigrations.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	var files []migrationFile
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		content, err := embeddedMigrations.ReadFile(path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read embedded migration %s: %w", entry.Name(), err)
		}
		files = append(files, migrationFile{name: entry.Name(), data: content})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files, nil
}

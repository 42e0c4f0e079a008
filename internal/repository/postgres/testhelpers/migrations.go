package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmoiron/sqlx"
)

// ApplyMigrations накатывает *.up.sql из каталога миграций в лексикографическом порядке
func ApplyMigrations(db sqlx.Execer, migrationsPath string) error {
	upFiles, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	if len(upFiles) == 0 {
		return fmt.Errorf("no up migrations in %s", migrationsPath)
	}
	sort.Strings(upFiles)

	return execFiles(db, "apply migration", upFiles)
}

// execFiles выполняет каждый SQL-файл одним Exec
func execFiles(db sqlx.Execer, action string, paths []string) error {
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("%s %s: %w", action, filepath.Base(path), err)
		}
	}

	return nil
}

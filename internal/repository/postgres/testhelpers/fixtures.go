package testhelpers

import (
	"path/filepath"

	"github.com/jmoiron/sqlx"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db sqlx.Execer, fixturesPath string, files []string) error {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, filepath.Join(fixturesPath, file))
	}

	return execFiles(db, "load fixture", paths)
}

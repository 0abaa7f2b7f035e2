// Package samples ships a small users and orders data set for first runs.
package samples

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

//go:embed *.tbl
var content embed.FS

// Names lists the embedded table files.
func Names() []string {
	matches, _ := fs.Glob(content, "*.tbl")
	return matches
}

// Seed copies the sample tables into dir when dir does not exist yet. It
// reports whether anything was written.
func Seed(dir string) (bool, error) {
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	slog.Info("Seeding data directory...", slog.String("dir", dir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}

	err := fs.WalkDir(content, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(content, path)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, path), data, 0o644)
	})
	return err == nil, err
}

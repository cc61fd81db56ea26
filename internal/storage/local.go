package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"storefront/internal/config"
)

type localStorage struct {
	root    string
	baseURL string
}

func newLocalStorage(cfg config.StorageConfig) *localStorage {
	root := cfg.LocalRoot
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &localStorage{
		root:    root,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (s *localStorage) Put(_ context.Context, path string, r io.Reader) error {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", path, err)
	}
	return nil
}

// URL returns a path relative to the server when no base URL is
// configured, which is what the storefront serves under /uploads.
func (s *localStorage) URL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(path), "/")
}

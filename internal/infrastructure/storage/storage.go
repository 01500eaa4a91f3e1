// Package storage implements domain.Storage backends: an in-memory map, a JSON
// file written atomically, and a SQLite key-value table.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Open builds the backend named in cfg. Paths are used as given.
func Open(ctx context.Context, cfg config.StorageConfig) (domain.Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "file":
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return NewFileStore(cfg.Path)
	case "sqlite":
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return NewSQLiteStore(ctx, cfg.Path)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

func ensureDir(path string) error {
	if path == "" {
		return errors.New("storage path is required")
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

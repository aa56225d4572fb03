package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/nikolayk812/storefront/internal/port"
)

// fileStore keeps one file per key under dir, the on-disk analogue of browser local storage.
// Writes go to a temp file first and are renamed into place.
type fileStore struct {
	dir string
}

func NewFileStore(dir string) (port.KeyValueStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *fileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("key[%s]: %w", key, port.ErrKeyNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	return data, nil
}

func (s *fileStore) Set(_ context.Context, key string, value []byte) (err error) {
	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove: %w", err)
	}
	return nil
}

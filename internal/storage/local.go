package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalBackend writes objects below a directory on disk. The API serves that
// directory, so URLs point back at the API's public address.
type LocalBackend struct {
	dir     string
	baseURL string
}

// NewLocalBackend creates dir if needed.
func NewLocalBackend(dir, baseURL string) (*LocalBackend, error) {
	if dir == "" {
		return nil, errors.New("local storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalBackend{dir: dir, baseURL: baseURL}, nil
}

func (b *LocalBackend) Name() string { return "local" }

// Dir is the root directory objects are written under.
func (b *LocalBackend) Dir() string { return b.dir }

func (b *LocalBackend) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := filepath.Join(b.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}

	// Write to a temp file first so readers never see a partial object.
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close object: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod object: %w", err)
	}
	return os.Rename(tmp.Name(), dst)
}

func (b *LocalBackend) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(b.dir, filepath.FromSlash(key)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (b *LocalBackend) URL(key string) string {
	return b.baseURL + "/" + key
}

// Package storage persists uploaded files and resolves their public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"devswipe/internal/config"
)

// ErrInvalidKey is returned for keys that are empty or escape the store.
var ErrInvalidKey = errors.New("invalid object key")

// Backend stores objects under slash-separated keys.
type Backend interface {
	Name() string
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New builds the backend selected by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StorageBackend {
	case "", "local":
		return NewLocalBackend(cfg.StorageLocalDir, cfg.PublicBaseURL)
	case "minio":
		b, err := NewMinioBackend(MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		if err != nil {
			return nil, err
		}
		if err := b.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", cfg.MinioBucket, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", ErrInvalidKey
		}
	}
	return key, nil
}

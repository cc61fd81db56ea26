// Package storage abstracts where uploaded files live. The local-disk
// driver serves development and single-node deployments; the S3 driver
// works against AWS S3 or any S3-compatible endpoint (MinIO, R2, Spaces).
package storage

import (
	"context"
	"fmt"
	"io"

	"storefront/internal/config"
)

// Storage writes publicly served files and resolves their URLs.
type Storage interface {
	Put(ctx context.Context, path string, r io.Reader) error
	URL(path string) string
}

// New selects a driver from configuration.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return newLocalStorage(cfg), nil
	case "s3":
		return newS3Storage(cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

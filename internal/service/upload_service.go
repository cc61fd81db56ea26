package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"storefront/internal/storage"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// allowed image extensions, lowercase without the dot
var allowedImageExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
	"gif":  true,
}

// UploadService stores product images and returns their public URLs.
type UploadService interface {
	StoreImage(ctx context.Context, filename string, size int64, r io.Reader) (imageURL string, err error)
}

type uploadService struct {
	store    storage.Storage
	maxBytes int64
}

// NewUploadService creates a new instance of UploadService
func NewUploadService(store storage.Storage, maxBytes int64) UploadService {
	return &uploadService{store: store, maxBytes: maxBytes}
}

// StoreImage validates the file and writes it under uploads/ with a name
// keyed by upload timestamp and the original extension.
func (s *uploadService) StoreImage(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	if filename == "" {
		return "", ErrNoFile
	}
	if size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if !allowedImageExts[ext] {
		return "", ErrUnsupportedType
	}

	name := fmt.Sprintf("product_%d.%s", time.Now().UnixMilli(), ext)
	storagePath := "uploads/" + name

	// A second guard on the reader itself; Content-Length is advisory.
	limited := io.LimitReader(r, s.maxBytes+1)
	if err := s.store.Put(ctx, storagePath, limited); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return s.store.URL(storagePath), nil
}

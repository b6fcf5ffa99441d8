package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// Storage persists proof-of-payment screenshots and returns an opaque key.
// The order core only ever carries the key; it never reads the bytes back.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

type PutInput struct {
	OrderID     string
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

var ErrUnsupportedType = errors.New("storage: unsupported file type")

// proofExt validates the upload is an image by extension. Screenshots only.
func proofExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return ext, nil
	default:
		return "", ErrUnsupportedType
	}
}

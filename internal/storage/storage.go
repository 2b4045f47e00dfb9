package storage

import (
	"context"
	"errors"
	"time"
)

// DefaultPresignedURLExpiry is used when a caller passes a non-positive expiry.
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrStorageDisabled is returned by the no-op storage used when no bucket
// is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// FileStorage defines the object storage operations used for avatars.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that accepts a PUT
	// of objectKey with the given content type.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary GET URL for objectKey.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// Disabled is a FileStorage that rejects every call.
type Disabled struct{}

func (Disabled) GeneratePresignedUploadURL(context.Context, string, string, time.Duration) (string, error) {
	return "", ErrStorageDisabled
}

func (Disabled) GeneratePresignedDownloadURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrStorageDisabled
}

func (Disabled) DeleteObject(context.Context, string) error {
	return ErrStorageDisabled
}

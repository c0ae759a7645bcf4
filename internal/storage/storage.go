package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var ErrStorageDisabled = errors.New("object storage is not configured")

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// PublicURL is the address the object is served from once uploaded.
	PublicURL(objectKey string) string

	// ObjectKey returns the key of a URL built by PublicURL, false for
	// URLs that point elsewhere.
	ObjectKey(url string) (string, bool)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// disabledStorage is used when no bucket is configured.
type disabledStorage struct{}

// NewDisabledStorage returns a FileStorage that rejects uploads and owns no URLs.
func NewDisabledStorage() FileStorage {
	return disabledStorage{}
}

func (disabledStorage) GeneratePresignedUploadURL(context.Context, string, string, time.Duration) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledStorage) PublicURL(string) string { return "" }

func (disabledStorage) ObjectKey(string) (string, bool) { return "", false }

func (disabledStorage) DeleteObject(context.Context, string) error { return ErrStorageDisabled }

package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKey = errors.New("invalid storage key")
	ErrTooLarge   = errors.New("object exceeds size limit")
)

// Storage is the backend for story images.
// Supports both mock (local filesystem served by this process) and S3.
type Storage interface {
	// PresignUpload returns a URL the client can PUT the object to until expiresIn elapses
	PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error)

	// PublicURL is where the object can be read once uploaded
	PublicURL(key string) string

	// KeyFromURL inverts PublicURL; ok is false for URLs outside this storage
	KeyFromURL(rawURL string) (key string, ok bool)

	// Exists checks if an object exists and returns its size
	Exists(ctx context.Context, key string) (exists bool, size int64, err error)
}

// StoryImageKey builds a collision-free key for an organization's story image,
// keeping the extension of the client's filename.
func StoryImageKey(orgID int64, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return StoryImagePrefix(orgID) + uuid.NewString() + ext
}

// StoryImagePrefix is the key prefix every image of an organization shares
func StoryImagePrefix(orgID int64) string {
	return fmt.Sprintf("stories/%d/", orgID)
}

// cleanKey rejects keys that would escape the storage root
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

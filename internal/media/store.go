// Package media reads captured screenshots and videos from a backing store.
//
// Keys are slash-separated paths relative to the store root, as produced by
// projection.Layout (for example "screens/TC01.png"). The same keys work for
// the local filesystem, S3-compatible buckets and Azure Blob containers.
package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

//go:generate go tool mockgen -source=store.go -destination=mock_store_test.go -package=media

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("media: not found")

// ErrInvalidKey is returned for keys that are empty or escape the store root.
var ErrInvalidKey = errors.New("media: invalid key")

// Store reads media objects by key.
type Store interface {
	// Get returns the object bytes, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Exists reports whether an object exists under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// CleanKey normalizes key and rejects keys that are not valid relative paths.
func CleanKey(key string) (string, error) {
	k := strings.TrimLeft(strings.TrimSpace(key), "/")
	if k == "" || !fs.ValidPath(k) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return k, nil
}

// joinPrefix prepends a bucket or container prefix to a cleaned key.
func joinPrefix(prefix, key string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// Package storage writes thumbnail images to an object store and resolves their
// public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("object not found")

// Store uploads objects and reports where clients can fetch them
type Store interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PublicURL(key string) string
}

// Opener is implemented by stores that serve their own objects
type Opener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

// ThumbnailKey namespaces an upload under the user's ID with a millisecond timestamp
// and a short random suffix. The suffix avoids collisions, it is not a secret.
func ThumbnailKey(userID, contentType string, now time.Time) string {
	ext, ok := extensions[contentType]
	if !ok {
		ext = "bin"
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s/%d-%s.%s", userID, now.UnixMilli(), suffix, ext)
}

package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
)

// BucketStore writes thumbnails to a Cloud Storage bucket (the Firebase project's
// bucket in production). Objects are publicly readable through the bucket.
type BucketStore struct {
	bucket *gcs.BucketHandle
	name   string
}

func NewBucketStore(bucket *gcs.BucketHandle, name string) *BucketStore {
	return &BucketStore{bucket: bucket, name: name}
}

// Upload refuses to overwrite an existing object
func (s *BucketStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	w := s.bucket.Object(key).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *BucketStore) PublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.name, (&url.URL{Path: key}).EscapedPath())
}

package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultContentType = "application/octet-stream"

// GridFSStore keeps thumbnails in a MongoDB GridFS bucket and serves them itself
// under <publicBaseURL>/thumbnails/<key>.
type GridFSStore struct {
	bucket        *gridfs.Bucket
	publicBaseURL string
}

// NewGridFSStore opens the named GridFS bucket in db
func NewGridFSStore(db *mongo.Database, bucketName, publicBaseURL string) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, err
	}
	return &GridFSStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *GridFSStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	stream, err := s.bucket.OpenUploadStream(key, opts)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := stream.SetWriteDeadline(deadline); err != nil {
			stream.Abort()
			return err
		}
	}
	if _, err := io.Copy(stream, r); err != nil {
		stream.Abort()
		return err
	}
	return stream.Close()
}

func (s *GridFSStore) PublicURL(key string) string {
	return s.publicBaseURL + "/thumbnails/" + key
}

// Open returns a reader for the stored object along with its content type
func (s *GridFSStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	stream, err := s.bucket.OpenDownloadStreamByName(key)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", ErrObjectNotFound
		}
		return nil, "", err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := stream.SetReadDeadline(deadline); err != nil {
			stream.Close()
			return nil, "", err
		}
	}

	contentType := defaultContentType
	if file := stream.GetFile(); file != nil && file.Metadata != nil {
		if v, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && v != "" {
			contentType = v
		}
	}
	return stream, contentType, nil
}

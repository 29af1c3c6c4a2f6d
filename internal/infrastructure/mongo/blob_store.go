package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
)

// ErrObjectExists is returned when an upload targets a name that is already stored.
var ErrObjectExists = errors.New("object already exists")

// Object is an open stored blob.
type Object struct {
	io.ReadCloser
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

// BlobStore keeps uploaded files in a GridFS bucket and serves them under a public URL.
type BlobStore struct {
	db      *mongo.Database
	name    string
	baseURL string
}

// NewBlobStore binds a GridFS bucket. baseURL is the externally visible origin of this API.
func NewBlobStore(db *mongo.Database, bucketName, baseURL string) *BlobStore {
	return &BlobStore{db: db, name: bucketName, baseURL: strings.TrimRight(baseURL, "/")}
}

// Bucket returns the bucket name.
func (s *BlobStore) Bucket() string {
	return s.name
}

// bucket builds a GridFS handle for one operation. Handles carry their own
// deadlines and first-write state, so they are not shared across goroutines.
func (s *BlobStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(s.name))
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

// Upload stores r under path and returns the stored path. Existing names are never overwritten.
func (s *BlobStore) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	count, err := s.db.Collection(s.name+".files").CountDocuments(ctx, bson.M{"filename": path}, options.Count().SetLimit(1))
	if err != nil {
		return "", &apperr.StorageError{Op: "stat " + path, Err: err}
	}
	if count > 0 {
		return "", &apperr.StorageError{Op: "upload " + path, Err: ErrObjectExists}
	}

	bucket, err := s.bucket(ctx)
	if err != nil {
		return "", &apperr.StorageError{Op: "open bucket", Err: err}
	}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	if _, err := bucket.UploadFromStream(path, r, opts); err != nil {
		return "", &apperr.StorageError{Op: "upload " + path, Err: err}
	}
	return path, nil
}

// OpenObject opens the newest revision of path for reading.
func (s *BlobStore) OpenObject(ctx context.Context, path string) (*Object, error) {
	bucket, err := s.bucket(ctx)
	if err != nil {
		return nil, &apperr.StorageError{Op: "open bucket", Err: err}
	}
	stream, err := bucket.OpenDownloadStreamByName(path)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, &apperr.StorageError{Op: "open " + path, Err: err}
	}

	file := stream.GetFile()
	object := &Object{ReadCloser: stream, ContentType: "application/octet-stream"}
	if file != nil {
		object.Size = file.Length
		object.UploadedAt = file.UploadDate
		if len(file.Metadata) > 0 {
			if ct, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && ct != "" {
				object.ContentType = ct
			}
		}
	}
	return object, nil
}

// Open satisfies readers that only need the bytes.
func (s *BlobStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	object, err := s.OpenObject(ctx, path)
	if err != nil {
		return nil, err
	}
	return object, nil
}

// PublicURL resolves a stored path to the URL served by the files route.
func (s *BlobStore) PublicURL(path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return fmt.Sprintf("%s/files/%s/%s", s.baseURL, url.PathEscape(s.name), strings.Join(segments, "/"))
}

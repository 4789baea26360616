package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/Lllllllleong/functionrecipes/internal/recipe"
)

// ErrObjectExists is returned when an atomic write finds the object already present.
var ErrObjectExists = errors.New("object already exists")

// ErrObjectTooLarge is returned when an object exceeds the read limit.
var ErrObjectTooLarge = errors.New("object exceeds the size limit")

// SaveToGCSAtomically writes content to a GCS object only if it doesn't already exist.
func SaveToGCSAtomically(ctx context.Context, bucket *storage.BucketHandle, objectName, content string) error {
	writer := bucket.Object(objectName).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = recipe.ContentTypeText

	if _, err := io.Copy(writer, strings.NewReader(content)); err != nil {
		_ = writer.Close()
		return classifyWriteError(objectName, err)
	}
	if err := writer.Close(); err != nil {
		return classifyWriteError(objectName, err)
	}
	return nil
}

func classifyWriteError(objectName string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
		slog.Warn("Object already exists, refusing to overwrite.", "gcsObject", objectName)
		return fmt.Errorf("%s: %w", objectName, ErrObjectExists)
	}
	slog.Error("Failed to write GCS object", "gcsObject", objectName, "error", err)
	return fmt.Errorf("failed to write to GCS: %w", err)
}

// GCSStore writes summaries to a single bucket.
type GCSStore struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewGCSStore returns a store for bucketName.
func NewGCSStore(client *storage.Client, bucketName string) (*GCSStore, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("NewGCSStore: bucket cannot be empty")
	}
	return &GCSStore{bucket: client.Bucket(bucketName), bucketName: bucketName}, nil
}

// Put uploads content under key and returns the object's public URL.
func (s *GCSStore) Put(ctx context.Context, key, content string) (string, error) {
	if err := SaveToGCSAtomically(ctx, s.bucket, key, content); err != nil {
		return "", err
	}
	return PublicURL(s.bucketName, key), nil
}

// PublicURL returns the unsigned URL of a GCS object.
func PublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}

// ParseGCSURI splits gs://bucket/object into its parts.
func ParseGCSURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("not a gs:// URI: %q", uri)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("gs:// URI must name a bucket and an object: %q", uri)
	}
	return bucket, object, nil
}

// GCSReader reads whole objects into memory.
type GCSReader struct {
	client *storage.Client
}

// NewGCSReader wraps client.
func NewGCSReader(client *storage.Client) *GCSReader {
	return &GCSReader{client: client}
}

// ReadObject returns the content of gs://bucket/object, failing when it is
// larger than maxBytes. A maxBytes of zero disables the limit.
func (r *GCSReader) ReadObject(ctx context.Context, bucket, object string, maxBytes int64) ([]byte, error) {
	reader, err := r.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get GCS object reader for gs://%s/%s: %w", bucket, object, err)
	}
	defer reader.Close()

	body := io.Reader(reader)
	if maxBytes > 0 {
		body = io.LimitReader(reader, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", bucket, object, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("gs://%s/%s: %w (limit %d bytes)", bucket, object, ErrObjectTooLarge, maxBytes)
	}
	return data, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Lllllllleong/functionrecipes/internal/gcp"
)

// ErrFileTooLarge is returned when a download exceeds the configured limit.
var ErrFileTooLarge = errors.New("file exceeds the maximum download size")

// ObjectReader reads a whole object from a bucket.
type ObjectReader interface {
	ReadObject(ctx context.Context, bucket, object string, maxBytes int64) ([]byte, error)
}

// URLFetcher downloads a file into memory over HTTP(S), or from Cloud
// Storage for gs:// URLs when an ObjectReader is configured.
type URLFetcher struct {
	client   *http.Client
	maxBytes int64
	objects  ObjectReader
}

// NewURLFetcher creates a fetcher. objects may be nil, in which case gs://
// URLs are rejected.
func NewURLFetcher(client *http.Client, maxBytes int64, objects ObjectReader) *URLFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &URLFetcher{client: client, maxBytes: maxBytes, objects: objects}
}

// Fetch returns the body of rawURL. Any status other than 200 is an error.
func (f *URLFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		return f.fetchObject(ctx, rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid file_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", u.Redacted(), resp.Status)
	}
	if f.maxBytes > 0 && resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w (%d > %d bytes)", ErrFileTooLarge, resp.ContentLength, f.maxBytes)
	}

	body := io.Reader(resp.Body)
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrFileTooLarge, f.maxBytes)
	}
	return data, nil
}

func (f *URLFetcher) fetchObject(ctx context.Context, uri string) ([]byte, error) {
	if f.objects == nil {
		return nil, fmt.Errorf("gs:// URLs require a Cloud Storage client")
	}
	bucket, object, err := gcp.ParseGCSURI(uri)
	if err != nil {
		return nil, err
	}
	data, err := f.objects.ReadObject(ctx, bucket, object, f.maxBytes)
	if errors.Is(err, gcp.ErrObjectTooLarge) {
		return nil, fmt.Errorf("%w: %v", ErrFileTooLarge, err)
	}
	return data, err
}

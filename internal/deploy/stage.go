package deploy

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// Stager uploads a staged artifact and returns its gs:// URI.
type Stager interface {
	Stage(ctx context.Context, bucket, object string, r io.Reader) (string, error)
}

// GCSStager stages artifacts in Google Cloud Storage.
type GCSStager struct {
	client *storage.Client
}

// NewGCSStager creates a storage client with application default credentials.
func NewGCSStager(ctx context.Context) (*GCSStager, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSStager{client: client}, nil
}

// Close releases the storage client.
func (s *GCSStager) Close() error {
	return s.client.Close()
}

func (s *GCSStager) Stage(ctx context.Context, bucket, object string, r io.Reader) (string, error) {
	bucket = bucketName(bucket)
	w := s.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/gzip"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload gs://%s/%s: %w", bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize gs://%s/%s: %w", bucket, object, err)
	}
	return fmt.Sprintf("gs://%s/%s", bucket, object), nil
}

// bucketName accepts "gs://bucket", "gs://bucket/" or "bucket".
func bucketName(s string) string {
	s = strings.TrimPrefix(s, "gs://")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/go-course-api/pkg/helpers"
)

// GCSStore keeps avatars in a bucket under Prefix and returns their public URL.
type GCSStore struct {
	client *gcs.Client
	Bucket string
	Prefix string
}

func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, Bucket: bucket, Prefix: "avatars"}
}

func (s *GCSStore) object(name string) string {
	return path.Join(s.Prefix, name)
}

func (s *GCSStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if name == "" || name != path.Base(name) {
		return "", ErrInvalidName
	}
	obj := s.object(name)
	w := s.client.Bucket(s.Bucket).Object(obj).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return helpers.PublicURL(s.Bucket, obj), nil
}

// Delete accepts either the bare name or the URL returned by Save.
func (s *GCSStore) Delete(ctx context.Context, name string) error {
	err := s.client.Bucket(s.Bucket).Object(s.object(path.Base(name))).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return nil
}

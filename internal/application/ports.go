package application

import (
	"context"
	"io"

	"github.com/oksasatya/go-course-api/pkg/helpers"
)

// AvatarStore persists uploaded avatars. Save returns the value kept on the user record.
type AvatarStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// DocumentIndexer mirrors documents into a full-text index.
type DocumentIndexer interface {
	Put(ctx context.Context, id string, doc any) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// EmailPublisher queues email jobs for the worker.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type TokenIssuer interface {
	Issue(id helpers.Identity) (string, error)
}

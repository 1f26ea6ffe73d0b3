package repository

import (
	"context"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
)

type CourseRepository interface {
	List(ctx context.Context, page Page) ([]entity.Course, error)
	GetByID(ctx context.Context, id string) (entity.Course, error)
	// Create stores c under a fresh id and returns the stored document.
	Create(ctx context.Context, c entity.Course) (entity.Course, error)
	Update(ctx context.Context, id string, patch map[string]any) (UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

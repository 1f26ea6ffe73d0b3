package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
)

const coursesTable = "courses"

type CourseRepository struct {
	docs *Collection[entity.Course]
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{docs: NewCollection[entity.Course](db, coursesTable)}
}

func (r *CourseRepository) List(ctx context.Context, page repository.Page) ([]entity.Course, error) {
	return r.docs.List(ctx, page)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (entity.Course, error) {
	return r.docs.Get(ctx, id)
}

func (r *CourseRepository) Create(ctx context.Context, c entity.Course) (entity.Course, error) {
	doc := make(entity.Course, len(c)+1)
	for k, v := range c {
		doc[k] = v
	}
	doc["id"] = uuid.NewString()
	if err := r.docs.Insert(ctx, doc.ID(), doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *CourseRepository) Update(ctx context.Context, id string, patch map[string]any) (repository.UpdateResult, error) {
	return r.docs.Update(ctx, id, patch)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}

var _ repository.CourseRepository = (*CourseRepository)(nil)

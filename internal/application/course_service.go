package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
	"github.com/oksasatya/go-course-api/pkg/apperror"
)

type CourseService struct {
	Repo   repository.CourseRepository
	Index  DocumentIndexer
	Logger *logrus.Logger
}

func NewCourseService(repo repository.CourseRepository, index DocumentIndexer, logger *logrus.Logger) *CourseService {
	return &CourseService{Repo: repo, Index: index, Logger: logger}
}

func (s *CourseService) List(ctx context.Context, page repository.Page) ([]entity.Course, error) {
	return s.Repo.List(ctx, page)
}

func (s *CourseService) Get(ctx context.Context, id string) (entity.Course, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("not found course")
		}
		return nil, err
	}
	return c, nil
}

func (s *CourseService) Create(ctx context.Context, doc entity.Course) (entity.Course, error) {
	c, err := s.Repo.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	coursesWritten.Add(1)
	s.reindex(ctx, c)
	return c, nil
}

// Update merges patch into course id. Unknown ids report zero counts.
func (s *CourseService) Update(ctx context.Context, id string, patch map[string]any) (repository.UpdateResult, error) {
	res, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return repository.UpdateResult{}, err
	}
	if res.ModifiedCount > 0 {
		coursesWritten.Add(1)
		if c, gErr := s.Repo.GetByID(ctx, id); gErr == nil {
			s.reindex(ctx, c)
		}
	}
	return res, nil
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	coursesWritten.Add(1)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.warn(err, id, "es remove course failed")
		}
	}
	return nil
}

func (s *CourseService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Index == nil {
		return []map[string]any{}, nil
	}
	return s.Index.Search(ctx, q, size)
}

func (s *CourseService) reindex(ctx context.Context, c entity.Course) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, c.ID(), c); err != nil {
		s.warn(err, c.ID(), "es index course failed")
	}
}

func (s *CourseService) warn(err error, id, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("course_id", id).Warn(msg)
	}
}

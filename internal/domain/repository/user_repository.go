package repository

import (
	"context"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, page Page) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}

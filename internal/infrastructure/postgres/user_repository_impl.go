package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
)

const usersTable = "users"

type UserRepository struct {
	docs *Collection[entity.User]
	now  func() time.Time
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{docs: NewCollection[entity.User](db, usersTable), now: time.Now}
}

// Create stores u under u.ID, stamping created/updated times when unset.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := r.now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return r.docs.Insert(ctx, u.ID, *u)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := r.docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := r.docs.FindOne(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, page repository.Page) ([]*entity.User, error) {
	docs, err := r.docs.List(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, len(docs))
	for i := range docs {
		out[i] = &docs[i]
	}
	return out, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}

var _ repository.UserRepository = (*UserRepository)(nil)

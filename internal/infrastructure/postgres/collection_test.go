package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
)

const testID = "6f1c2a9e-4a7b-4c55-9d0e-2b8f3f1a7c10"

func setupCourseRepository(t *testing.T) (*CourseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCourseRepository(db), mock
}

func TestCollection_List(t *testing.T) {
	tests := []struct {
		name       string
		page       repository.Page
		limit      int
		offset     int
		setupMock  func(sqlmock.Sqlmock)
		wantTitles []string
		wantErr    bool
	}{
		{
			name:   "defaults",
			page:   repository.Page{},
			limit:  10,
			offset: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc FROM courses ORDER BY seq LIMIT \$1 OFFSET \$2`).
					WithArgs(10, 0).
					WillReturnRows(sqlmock.NewRows([]string{"doc"}).
						AddRow([]byte(`{"id":"a","title":"Go"}`)).
						AddRow([]byte(`{"id":"b","title":"Rust"}`)))
			},
			wantTitles: []string{"Go", "Rust"},
		},
		{
			name: "second page",
			page: repository.Page{Page: 2, Limit: 1},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc FROM courses`).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"id":"b","title":"Rust"}`)))
			},
			wantTitles: []string{"Rust"},
		},
		{
			name: "empty",
			page: repository.Page{Page: 9, Limit: 5},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc FROM courses`).
					WithArgs(5, 40).
					WillReturnRows(sqlmock.NewRows([]string{"doc"}))
			},
			wantTitles: []string{},
		},
		{
			name: "database error",
			page: repository.Page{},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc FROM courses`).WillReturnError(errors.New("boom"))
			},
			wantErr: true,
		},
		{
			name: "corrupt document",
			page: repository.Page{},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc FROM courses`).
					WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{`)))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupCourseRepository(t)
			tt.setupMock(mock)

			got, err := repo.List(context.Background(), tt.page)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				titles := make([]string, 0, len(got))
				for _, c := range got {
					titles = append(titles, c.Title())
				}
				assert.Equal(t, tt.wantTitles, titles)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCollection_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := setupCourseRepository(t)
		mock.ExpectQuery(`SELECT doc FROM courses WHERE id = \$1`).
			WithArgs(testID).
			WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"id":"` + testID + `","title":"Go","price":9.5}`)))

		c, err := repo.GetByID(context.Background(), testID)
		require.NoError(t, err)
		assert.Equal(t, testID, c.ID())
		assert.Equal(t, 9.5, c["price"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := setupCourseRepository(t)
		mock.ExpectQuery(`SELECT doc FROM courses WHERE id`).
			WithArgs(testID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), testID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id never hits the database", func(t *testing.T) {
		repo, mock := setupCourseRepository(t)

		_, err := repo.GetByID(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_Create(t *testing.T) {
	repo, mock := setupCourseRepository(t)
	mock.ExpectExec(`INSERT INTO courses \(id, doc\) VALUES \(\$1, \$2::jsonb\)`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	in := entity.Course{"title": "Go", "price": 10.0, "id": "client-chosen"}
	out, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotEqual(t, "client-chosen", out.ID())
	assert.Len(t, out.ID(), 36)
	assert.Equal(t, "Go", out.Title())
	assert.Equal(t, "client-chosen", in["id"], "input map must not be mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollection_InsertDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	users := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	err = users.Create(context.Background(), &entity.User{ID: testID, Email: "a@b.c"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollection_Update(t *testing.T) {
	t.Run("modified", func(t *testing.T) {
		repo, mock := setupCourseRepository(t)
		mock.ExpectQuery(`WITH target AS`).
			WithArgs(testID, `{"price":20}`).
			WillReturnRows(sqlmock.NewRows([]string{"matched", "modified"}).AddRow(int64(1), int64(1)))

		res, err := repo.Update(context.Background(), testID, map[string]any{"price": 20, "id": "hijack"})
		require.NoError(t, err)
		assert.Equal(t, repository.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		repo, mock := setupCourseRepository(t)
		mock.ExpectQuery(`WITH target AS`).
			WithArgs(testID, `{}`).
			WillReturnRows(sqlmock.NewRows([]string{"matched", "modified"}).AddRow(int64(0), int64(0)))

		res, err := repo.Update(context.Background(), testID, nil)
		require.NoError(t, err)
		assert.Equal(t, repository.UpdateResult{Acknowledged: true}, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, mock := setupCourseRepository(t)

		res, err := repo.Update(context.Background(), "42", map[string]any{"title": "x"})
		require.NoError(t, err)
		assert.Equal(t, repository.UpdateResult{Acknowledged: true}, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := setupCourseRepository(t)
		mock.ExpectQuery(`WITH target AS`).WillReturnError(errors.New("boom"))

		_, err := repo.Update(context.Background(), testID, map[string]any{"title": "x"})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCollection_Delete(t *testing.T) {
	repo, mock := setupCourseRepository(t)
	mock.ExpectExec(`DELETE FROM courses WHERE id = \$1`).
		WithArgs(testID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM courses WHERE id = \$1`).
		WithArgs(testID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), testID))
	require.NoError(t, repo.Delete(context.Background(), testID))
	require.NoError(t, repo.Delete(context.Background(), "garbage"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

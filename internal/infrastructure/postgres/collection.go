package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-course-api/internal/domain/repository"
)

const uniqueViolation = "23505"

// Collection stores JSON documents of type T in a table shaped
// (id uuid, seq bigserial, doc jsonb, created_at, updated_at).
// seq keeps insertion order for paging.
type Collection[T any] struct {
	db    *sql.DB
	table string
}

func NewCollection[T any](db *sql.DB, table string) *Collection[T] {
	return &Collection[T]{db: db, table: table}
}

func (c *Collection[T]) List(ctx context.Context, page repository.Page) ([]T, error) {
	page = page.Normalize()
	q := fmt.Sprintf(`SELECT doc FROM %s ORDER BY seq LIMIT $1 OFFSET $2`, c.table)
	rows, err := c.db.QueryContext(ctx, q, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.table, err)
	}
	defer rows.Close()

	out := make([]T, 0, page.Limit)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.table, err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.table, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.table, err)
	}
	return out, nil
}

// Get returns the document stored under id. Ids that are not UUIDs are simply not found.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if _, err := uuid.Parse(id); err != nil {
		return zero, repository.ErrNotFound
	}
	q := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)
	return c.one(ctx, q, id)
}

// FindOne returns the first document (by insertion order) whose top-level field equals value.
func (c *Collection[T]) FindOne(ctx context.Context, field, value string) (T, error) {
	q := fmt.Sprintf(`SELECT doc FROM %s WHERE doc->>$1 = $2 ORDER BY seq LIMIT 1`, c.table)
	return c.one(ctx, q, field, value)
}

func (c *Collection[T]) one(ctx context.Context, q string, args ...any) (T, error) {
	var (
		zero T
		raw  []byte
	)
	if err := c.db.QueryRowContext(ctx, q, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, repository.ErrNotFound
		}
		return zero, fmt.Errorf("get %s: %w", c.table, err)
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return zero, fmt.Errorf("decode %s: %w", c.table, err)
	}
	return doc, nil
}

func (c *Collection[T]) Insert(ctx context.Context, id string, doc T) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.table, err)
	}
	q := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, c.table)
	if _, err := c.db.ExecContext(ctx, q, id, string(b)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("insert %s: %w", c.table, repository.ErrDuplicate)
		}
		return fmt.Errorf("insert %s: %w", c.table, err)
	}
	return nil
}

// Update merges patch into the stored document. The "id" key is never patched.
// A missing document is not an error: the result just reports zero matches.
func (c *Collection[T]) Update(ctx context.Context, id string, patch map[string]any) (repository.UpdateResult, error) {
	res := repository.UpdateResult{Acknowledged: true}
	if _, err := uuid.Parse(id); err != nil {
		return res, nil
	}
	clean := make(map[string]any, len(patch))
	for k, v := range patch {
		if k == "id" {
			continue
		}
		clean[k] = v
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return repository.UpdateResult{}, fmt.Errorf("encode %s patch: %w", c.table, err)
	}
	q := fmt.Sprintf(`WITH target AS (
	SELECT id, doc FROM %[1]s WHERE id = $1
), changed AS (
	UPDATE %[1]s SET doc = target.doc || $2::jsonb, updated_at = now()
	FROM target
	WHERE %[1]s.id = target.id AND (target.doc || $2::jsonb) IS DISTINCT FROM target.doc
	RETURNING %[1]s.id
)
SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM changed)`, c.table)
	if err := c.db.QueryRowContext(ctx, q, id, string(b)).Scan(&res.MatchedCount, &res.ModifiedCount); err != nil {
		return repository.UpdateResult{}, fmt.Errorf("update %s: %w", c.table, err)
	}
	return res, nil
}

// Delete removes id. Deleting an unknown id succeeds.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)
	if _, err := c.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete %s: %w", c.table, err)
	}
	return nil
}

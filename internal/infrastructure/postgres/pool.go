package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// PoolOptions sizes the pgx pool behind the document collections.
type PoolOptions struct {
	DSN         string
	MaxConns    int32
	MinConns    int32
	MaxConnLife time.Duration
	PingTimeout time.Duration
}

// Store is one pgx pool plus the database/sql view the collections run on.
// Both share the same connections.
type Store struct {
	Pool *pgxpool.Pool
	DB   *sql.DB
}

// Open connects to Postgres and fails fast when the server does not answer.
func Open(ctx context.Context, opts PoolOptions) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	if opts.MaxConnLife > 0 {
		cfg.MaxConnLifetime = opts.MaxConnLife
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{Pool: pool, DB: stdlib.OpenDBFromPool(pool)}, nil
}

// Courses and Users hand out the repositories backed by this store.
func (s *Store) Courses() *CourseRepository { return NewCourseRepository(s.DB) }

func (s *Store) Users() *UserRepository { return NewUserRepository(s.DB) }

func (s *Store) Close() {
	if s == nil {
		return
	}
	_ = s.DB.Close()
	s.Pool.Close()
}

package main

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-course-api/config"
	"github.com/oksasatya/go-course-api/internal/container"
	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
	pginfra "github.com/oksasatya/go-course-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-course-api/pkg/helpers"
)

// seed makes sure a manager account exists so DELETE /api/users/:id is usable.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pg, err := pginfra.Open(ctx, container.PoolOptions(cfg))
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pg.Close()

	if err := pginfra.RunMigrations(pg.DB, cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	users := pg.Users()
	email := cfg.SeedManagerEmail

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		logger.WithField("id", existing.ID).WithField("role", existing.Role).Info("manager already seeded")
		return
	case !errors.Is(err, repository.ErrNotFound):
		logger.Fatalf("lookup failed: %v", err)
	}

	hash, err := helpers.HashPassword(cfg.SeedManagerPassword)
	if err != nil {
		logger.Fatalf("failed to hash password: %v", err)
	}
	jwt, err := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		logger.Fatalf("jwt: %v", err)
	}

	u := &entity.User{
		ID:        uuid.NewString(),
		FirstName: "Course",
		LastName:  "Manager",
		Email:     email,
		Password:  hash,
		Role:      entity.RoleManager,
	}
	u.Token, err = jwt.Issue(helpers.Identity{Email: u.Email, UserID: u.ID, Role: string(u.Role)})
	if err != nil {
		logger.Fatalf("issue token: %v", err)
	}
	if err := users.Create(ctx, u); err != nil {
		logger.Fatalf("failed to seed manager: %v", err)
	}
	logger.WithField("id", u.ID).WithField("email", email).Info("seeded manager")
}

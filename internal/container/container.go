package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-course-api/config"
	"github.com/oksasatya/go-course-api/internal/application"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
	pginfra "github.com/oksasatya/go-course-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-course-api/internal/infrastructure/search"
	avatarstore "github.com/oksasatya/go-course-api/internal/infrastructure/storage"
	"github.com/oksasatya/go-course-api/pkg/helpers"
)

// Container holds the process-wide handles built at startup and shared by the router.
// Optional backends (Redis, GCS, Elasticsearch, RabbitMQ) stay nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager
	Redis  *redis.Client

	CourseRepo  repository.CourseRepository
	UserRepo    repository.UserRepository
	Avatars     application.AvatarStore
	CourseIndex application.DocumentIndexer
	UserIndex   application.DocumentIndexer
	Mail        application.EmailPublisher

	PG     *pginfra.Store
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitPublisher
}

// Build connects every configured backend. Postgres is mandatory, the rest is optional.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	jwt, err := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	c.JWT = jwt

	pg, err := pginfra.Open(ctx, PoolOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	c.PG = pg
	c.CourseRepo = pg.Courses()
	c.UserRepo = pg.Users()

	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
	}
	c.Redis = rdb

	if err := c.buildAvatarStore(ctx); err != nil {
		c.Close()
		return nil, err
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch client init failed, search disabled")
	}
	c.ES = es
	c.CourseIndex = search.NewIndexer(es, cfg.ESCoursesIndex, "title^2", "description")
	c.UserIndex = search.NewIndexer(es, cfg.ESUsersIndex, "email^2", "firstName", "lastName")

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, welcome emails disabled")
		} else {
			c.Rabbit = pub
			c.Mail = pub
		}
	}
	return c, nil
}

func (c *Container) buildAvatarStore(ctx context.Context) error {
	if c.Config.GCSBucket != "" {
		client, err := helpers.NewGCSClient(ctx, c.Config.GCSCredentialsJSONPath)
		if err != nil {
			return fmt.Errorf("init gcs: %w", err)
		}
		c.GCS = client
		c.Avatars = avatarstore.NewGCSStore(client, c.Config.GCSBucket)
		return nil
	}
	local, err := avatarstore.NewLocalStore(c.Config.UploadDir)
	if err != nil {
		return err
	}
	c.Avatars = local
	return nil
}

// Close releases every handle Build opened.
func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	c.PG.Close()
}

// PoolOptions maps the DB_* settings onto the postgres store.
func PoolOptions(cfg *config.Config) pginfra.PoolOptions {
	return pginfra.PoolOptions{
		DSN:         cfg.PostgresDSN(),
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
	}
}

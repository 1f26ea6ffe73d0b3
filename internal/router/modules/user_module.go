package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-course-api/internal/interface/http"
	"github.com/oksasatya/go-course-api/internal/interface/middleware"
)

// UserModule wires user routes under /api/users.
// Public: POST /register, POST /login, GET /:userId
// Bearer: GET / ; bearer + manager: DELETE /:userId
type UserModule struct {
	Handler        *handlers.UserHandler
	Tokens         middleware.TokenVerifier
	Redis          *redis.Client
	LimitPerMinute int
	MaxUploadBytes int64
	Logger         *logrus.Logger
}

func NewUserModule(h *handlers.UserHandler, tokens middleware.TokenVerifier, rdb *redis.Client, limitPerMinute int, maxUploadBytes int64) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens, Redis: rdb, LimitPerMinute: limitPerMinute, MaxUploadBytes: maxUploadBytes}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.Redis, middleware.RateLimitOptions{
		Max:    m.LimitPerMinute,
		Window: time.Minute,
		Key:    middleware.KeyByIPAndPath(),
		Logger: m.Logger,
	})
	verify := middleware.VerifyToken(m.Tokens)

	users := rg.Group("/users")
	users.GET("", verify, m.Handler.List)
	users.POST("/register", limiter, middleware.MaxBodyBytes(m.MaxUploadBytes), m.Handler.Register)
	users.POST("/login", limiter, m.Handler.Login)
	users.GET("/:userId", m.Handler.Get)
	users.DELETE("/:userId", verify, middleware.AllowedTo(entity.RoleManager), m.Handler.Delete)
}

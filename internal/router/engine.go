package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-course-api/internal/container"
	"github.com/oksasatya/go-course-api/internal/interface/middleware"
	"github.com/oksasatya/go-course-api/pkg/response"
	"github.com/oksasatya/go-course-api/pkg/validation"
)

// NewEngine builds the Gin engine: global middleware, static uploads, API modules
// and the JSON 404 fallback.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	validation.Init()

	r := gin.New()
	if err := middleware.TrustProxies(r, cfg.TrustedProxyList()); err != nil {
		c.Logger.WithError(err).Warn("invalid TRUSTED_PROXIES, forwarding headers ignored")
		_ = middleware.TrustProxies(r, nil)
	}
	r.Use(middleware.Recovery(c.Logger))
	r.Use(middleware.RequestID(), middleware.RealIP())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins())))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorHandler(c.Logger))

	if cfg.GCSBucket == "" && cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	reg := NewRegistry(r, c.Logger)
	InitModules(reg, c)
	reg.RegisterAll()

	r.NoRoute(response.NotFound)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

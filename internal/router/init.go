package router

import (
	"github.com/oksasatya/go-course-api/internal/application"
	"github.com/oksasatya/go-course-api/internal/container"
	handlers "github.com/oksasatya/go-course-api/internal/interface/http"
	"github.com/oksasatya/go-course-api/internal/router/modules"
)

type services struct {
	Courses *application.CourseService
	Users   *application.UserService
}

func buildServices(c *container.Container) services {
	courses := application.NewCourseService(c.CourseRepo, c.CourseIndex, c.Logger)

	users := application.NewUserService(c.UserRepo, c.JWT, c.Avatars, c.Logger)
	users.Index = c.UserIndex
	users.Mail = c.Mail
	users.AppName = c.Config.AppName

	return services{Courses: courses, Users: users}
}

// InitModules builds services and handlers from the container and registers
// every feature module. Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	svc := buildServices(c)
	cfg := c.Config

	r.Add(modules.NewCourseModule(handlers.NewCourseHandler(svc.Courses)))
	users := modules.NewUserModule(handlers.NewUserHandler(svc.Users), c.JWT, c.Redis, cfg.RateLimitPerMinute, cfg.UploadMaxBytes)
	users.Logger = c.Logger
	r.Add(users)
	r.Add(modules.NewSearchModule(
		handlers.NewSearchHandler(svc.Courses, "courses"),
		handlers.NewSearchHandler(svc.Users, "users"),
		c.JWT,
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}

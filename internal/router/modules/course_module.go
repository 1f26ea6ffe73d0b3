package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-course-api/internal/interface/http"
)

// CourseModule: public CRUD under /api/courses.
type CourseModule struct {
	Handler *handlers.CourseHandler
}

func NewCourseModule(h *handlers.CourseHandler) *CourseModule {
	return &CourseModule{Handler: h}
}

func (m *CourseModule) Name() string { return "courses" }

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	courses := rg.Group("/courses")
	courses.GET("", m.Handler.List)
	courses.POST("", m.Handler.Create)
	courses.GET("/:courseId", m.Handler.Get)
	courses.PATCH("/:courseId", m.Handler.Update)
	courses.PUT("/:courseId", m.Handler.Update)
	courses.DELETE("/:courseId", m.Handler.Delete)
}

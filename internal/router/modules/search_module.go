package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-course-api/internal/interface/http"
	"github.com/oksasatya/go-course-api/internal/interface/middleware"
)

// SearchModule: GET /api/search/courses (public), GET /api/search/users (bearer).
type SearchModule struct {
	Courses *handlers.SearchHandler
	Users   *handlers.SearchHandler
	Tokens  middleware.TokenVerifier
}

func NewSearchModule(courses, users *handlers.SearchHandler, tokens middleware.TokenVerifier) *SearchModule {
	return &SearchModule{Courses: courses, Users: users, Tokens: tokens}
}

func (m *SearchModule) Name() string { return "search" }

func (m *SearchModule) Register(rg *gin.RouterGroup) {
	s := rg.Group("/search")
	s.GET("/courses", m.Courses.Search)
	s.GET("/users", middleware.VerifyToken(m.Tokens), m.Users.Search)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-course-api/pkg/response"
)

type Searcher interface {
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type searchRequest struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

// SearchHandler serves full-text lookups; key names the data field ("courses", "users").
type SearchHandler struct {
	Svc Searcher
	key string
}

func NewSearchHandler(svc Searcher, key string) *SearchHandler {
	return &SearchHandler{Svc: svc, key: key}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	hits, err := h.Svc.Search(c.Request.Context(), req.Q, req.Size)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{h.key: hits})
}

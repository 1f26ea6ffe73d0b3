package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/oksasatya/go-course-api/internal/application"
	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
	"github.com/oksasatya/go-course-api/pkg/response"
)

type CourseHandler struct {
	Svc *application.CourseService
}

func NewCourseHandler(svc *application.CourseService) *CourseHandler {
	return &CourseHandler{Svc: svc}
}

// createCourseRequest declares the fields checked on create; the stored
// document keeps every other field of the body as well.
type createCourseRequest struct {
	Title string   `json:"title" binding:"required,min=2"`
	Price *float64 `json:"price" binding:"required"`
}

func (h *CourseHandler) List(c *gin.Context) {
	var page repository.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	courses, err := h.Svc.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": course})
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	var doc entity.Course
	if err := c.ShouldBindBodyWith(&doc, binding.JSON); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), doc)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// Update applies the body as a partial update; an empty body changes nothing.
func (h *CourseHandler) Update(c *gin.Context) {
	patch := map[string]any{}
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(bindError(err))
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), c.Param("courseId"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": res})
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("courseId")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

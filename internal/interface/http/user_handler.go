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
	"github.com/oksasatya/go-course-api/pkg/apperror"
	"github.com/oksasatya/go-course-api/pkg/response"
	"github.com/oksasatya/go-course-api/pkg/validation"
)

type UserHandler struct {
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

type registerRequest struct {
	FirstName string `form:"firstName" binding:"required"`
	LastName  string `form:"lastName" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required,max=72"` // bcrypt input limit
	Role      string `form:"role" binding:"omitempty,role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// List returns a page of users without password or token.
func (h *UserHandler) List(c *gin.Context) {
	var page repository.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	users, err := h.Svc.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]entity.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	response.Success(c, http.StatusOK, gin.H{"users": out})
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u.Profile()})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// Register accepts multipart/form-data with an "avatar" image file.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		_ = c.Error(apperror.Validation([]validation.FieldError{{
			Field:   "avatar",
			Tag:     "required",
			Message: "avatar is required",
		}}))
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !IsImage(contentType) {
		_ = c.Error(apperror.NotAnImage("this is not an image"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Password:          req.Password,
		Role:              entity.Role(req.Role),
		AvatarContentType: contentType,
		Avatar:            f,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": u.Profile()})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(bindError(err))
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token})
}

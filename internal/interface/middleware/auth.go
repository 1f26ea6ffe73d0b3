package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/pkg/apperror"
	"github.com/oksasatya/go-course-api/pkg/helpers"
)

const CtxCurrentUserKey = "currentUser"

type TokenVerifier interface {
	Verify(token string) (helpers.Identity, error)
}

// VerifyToken reads "Authorization: Bearer <token>", verifies it and stores the
// identity in the Gin context for CurrentUser and AllowedTo.
func VerifyToken(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			_ = c.Error(apperror.Unauthenticated("No token provided", nil))
			c.Abort()
			return
		}
		// second whitespace-separated part, the scheme word is not checked
		parts := strings.Fields(header)
		if len(parts) < 2 {
			_ = c.Error(apperror.Unauthenticated("invalid token", nil))
			c.Abort()
			return
		}
		id, err := v.Verify(parts[1])
		if err != nil {
			_ = c.Error(apperror.Unauthenticated("invalid token", err))
			c.Abort()
			return
		}
		c.Set(CtxCurrentUserKey, id)
		c.Next()
	}
}

// CurrentUser returns the identity set by VerifyToken.
func CurrentUser(c *gin.Context) (helpers.Identity, bool) {
	v, ok := c.Get(CtxCurrentUserKey)
	if !ok {
		return helpers.Identity{}, false
	}
	id, ok := v.(helpers.Identity)
	return id, ok
}

// AllowedTo lets the request through only when the verified role is one of roles.
func AllowedTo(roles ...entity.Role) gin.HandlerFunc {
	required := entity.NewRoleSet(roles...)
	return func(c *gin.Context) {
		id, ok := CurrentUser(c)
		if !ok {
			_ = c.Error(apperror.Unauthenticated("No token provided", nil))
			c.Abort()
			return
		}
		if !entity.Allow(entity.Role(id.Role), required) {
			_ = c.Error(apperror.Forbidden("you are not allowed to perform this action"))
			c.Abort()
			return
		}
		c.Next()
	}
}

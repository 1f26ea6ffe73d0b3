package router

import "github.com/gin-gonic/gin"

// Module is one feature area. Register receives the /api group.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}

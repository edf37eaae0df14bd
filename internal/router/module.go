package router

import "github.com/gin-gonic/gin"

// Module is a feature that mounts its routes below /api. Name shows up in the startup log
// and in GET /api/health.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}

// Package controller provides the HTTP handlers of the CareerConnect API.
// Each controller registers its routes on a gin router group and delegates
// to the service layer.
package controller

import (
	"github.com/careerconnect/careerconnect/web/middleware"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/gin-gonic/gin"
)

// BaseController carries what every controller needs to guard its routes.
type BaseController struct {
	authService *service.AuthService
}

// member returns a group whose routes require a valid access token.
func (a *BaseController) member(g *gin.RouterGroup) *gin.RouterGroup {
	return g.Group("", middleware.Authenticate(a.authService))
}

// admin is member plus an audit record for every successful mutation.
func (a *BaseController) admin(g *gin.RouterGroup) *gin.RouterGroup {
	return g.Group("", middleware.Authenticate(a.authService), middleware.AuditMiddleware())
}

func can(action service.Action) gin.HandlerFunc {
	return middleware.Authorize(action)
}

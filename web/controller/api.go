package controller

import (
	"net/http"

	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/gin-gonic/gin"
)

// APIController mounts every controller under /api.
type APIController struct {
	userController        *UserController
	jobController         *JobController
	applicationController *ApplicationController
	serverController      *ServerController
	auditController       *AuditController
}

// NewAPIController registers the API. limiter guards the unauthenticated
// account routes.
func NewAPIController(g *gin.RouterGroup, auth *service.AuthService, limiter gin.HandlerFunc) *APIController {
	a := &APIController{}
	a.initRouter(g, auth, limiter)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup, auth *service.AuthService, limiter gin.HandlerFunc) {
	api := g.Group("/api")
	api.GET("/health", a.health)
	api.GET("/test", a.test)

	a.userController = NewUserController(api.Group("/users"), auth, limiter)
	a.jobController = NewJobController(api.Group("/jobs"), auth)
	a.applicationController = NewApplicationController(api.Group("/applications"), auth)

	admin := api.Group("/admin")
	a.serverController = NewServerController(admin, auth)
	a.auditController = NewAuditController(admin, auth)
}

func (a *APIController) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": config.GetVersion()})
}

func (a *APIController) test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Backend"})
}

package controller

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController reports the health and status of the running instance.
type ServerController struct {
	BaseController

	serverService *service.ServerService

	mu         sync.Mutex
	lastStatus *service.Status
	lastAt     time.Time
}

func NewServerController(g *gin.RouterGroup, auth *service.AuthService) *ServerController {
	a := &ServerController{
		BaseController: BaseController{authService: auth},
		serverService:  service.NewServerService(),
	}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	admin := a.admin(g)
	admin.GET("/status", can(service.ViewServerStatus), a.status)
	admin.GET("/logs", can(service.ViewServerStatus), a.getLogs)
}

// status probes at most once every two seconds; gopsutil samples are not
// free.
func (a *ServerController) status(c *gin.Context) {
	a.mu.Lock()
	if a.lastStatus == nil || time.Since(a.lastAt) > 2*time.Second {
		a.lastStatus = a.serverService.GetStatus()
		a.lastAt = time.Now()
	}
	status := a.lastStatus
	a.mu.Unlock()
	c.JSON(http.StatusOK, status)
}

func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil || count <= 0 {
		jsonError(c, service.NewValidationError("count must be a positive number"))
		return
	}
	level := c.DefaultQuery("level", "info")
	logs := logger.GetLogs(count, level)
	c.JSON(http.StatusOK, gin.H{"count": len(logs), "logs": logs})
}

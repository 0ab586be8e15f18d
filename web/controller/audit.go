package controller

import (
	"net/http"
	"time"

	"github.com/careerconnect/careerconnect/web/service"

	"github.com/gin-gonic/gin"
)

// AuditController exposes the admin audit trail.
type AuditController struct {
	BaseController

	auditService service.AuditLogService
}

func NewAuditController(g *gin.RouterGroup, auth *service.AuthService) *AuditController {
	a := &AuditController{BaseController: BaseController{authService: auth}}
	a.initRouter(g)
	return a
}

func (a *AuditController) initRouter(g *gin.RouterGroup) {
	admin := a.admin(g)
	admin.GET("/audit", can(service.ViewAuditLog), a.getAuditLogs)
}

// getAuditLogs retrieves audit logs with filters
func (a *AuditController) getAuditLogs(c *gin.Context) {
	var req struct {
		UserID   string `form:"userId"`
		Action   string `form:"action"`
		Resource string `form:"resource"`
		Since    string `form:"since"`
		Until    string `form:"until"`
		Limit    int    `form:"limit"`
		Offset   int    `form:"offset"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		jsonError(c, service.NewValidationError("Invalid query parameters"))
		return
	}

	filter := service.AuditFilter{
		UserID:   req.UserID,
		Action:   req.Action,
		Resource: req.Resource,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	var err error
	if filter.Since, err = parseTime(req.Since); err != nil {
		jsonError(c, service.NewValidationError("since must be an RFC 3339 time"))
		return
	}
	if filter.Until, err = parseTime(req.Until); err != nil {
		jsonError(c, service.NewValidationError("until must be an RFC 3339 time"))
		return
	}

	logs, total, err := a.auditService.GetAuditLogs(filter)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": total})
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/web/service"
	"github.com/careerconnect/careerconnect/web/session"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware records successful admin mutations once the handler has
// run. It belongs after Authorize on admin routes.
func AuditMiddleware() gin.HandlerFunc {
	auditService := service.AuditLogService{}

	return func(c *gin.Context) {
		c.Next()

		action := actionFromMethod(c.Request.Method)
		if action == "" || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		user := session.GetLoginUser(c)
		if user == nil || !user.IsAdmin() {
			return
		}

		path := c.Request.URL.Path
		err := auditService.LogAction(service.AuditEntry{
			UserID:     user.ID,
			UserEmail:  user.Email,
			Action:     action,
			Resource:   resourceFromPath(path),
			ResourceID: resourceID(c),
			IP:         c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
			Details: map[string]any{
				"method": c.Request.Method,
				"path":   path,
				"status": c.Writer.Status(),
			},
		})
		if err != nil {
			logger.Warning("Failed to log audit action:", err)
		}
	}
}

func actionFromMethod(method string) string {
	switch method {
	case http.MethodPost:
		return "CREATE"
	case http.MethodPut, http.MethodPatch:
		return "UPDATE"
	case http.MethodDelete:
		return "DELETE"
	}
	return ""
}

func resourceFromPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/jobs"):
		return "job"
	case strings.HasPrefix(path, "/api/applications"):
		return "application"
	case strings.HasPrefix(path, "/api/users"):
		return "user"
	}
	return "unknown"
}

func resourceID(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	// set by create handlers
	if id, ok := c.Get(CreatedIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// CreatedIDKey is where a handler stores the id of the resource it created.
const CreatedIDKey = "createdID"

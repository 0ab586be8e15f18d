package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/web/entity"
	"github.com/careerconnect/careerconnect/web/locale"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panicking handler into a generic 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf("panic serving %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
		c.AbortWithStatusJSON(http.StatusInternalServerError, entity.Msg{
			Message: locale.Localize(c, "errors.server", "Server error", nil),
		})
	})
}

package middleware

import (
	"strings"

	"github.com/careerconnect/careerconnect/web/entity"
	"github.com/careerconnect/careerconnect/web/service"
	"github.com/careerconnect/careerconnect/web/session"

	"github.com/gin-gonic/gin"
)

// Authenticate requires a valid access token in the Authorization header and
// stores the caller's id for the handlers that follow.
func Authenticate(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			entity.AbortWithError(c, service.ErrUnauthorized)
			return
		}
		userID, err := auth.Authenticate(strings.TrimSpace(raw))
		if err != nil {
			entity.AbortWithError(c, err)
			return
		}
		session.SetLoginUserID(c, userID)
		c.Next()
	}
}

package middleware

import (
	"errors"

	"github.com/careerconnect/careerconnect/web/entity"
	"github.com/careerconnect/careerconnect/web/service"
	"github.com/careerconnect/careerconnect/web/session"

	"github.com/gin-gonic/gin"
)

// Own-account actions report a deleted caller as a missing profile rather
// than as an authentication failure.
var accountActions = map[service.Action]bool{
	service.ViewOwnProfile:   true,
	service.UpdateOwnProfile: true,
	service.DeleteOwnAccount: true,
}

// Authorize loads the authenticated caller and checks action against the
// policy. It must run after Authenticate.
func Authorize(action service.Action) gin.HandlerFunc {
	userService := service.UserService{}

	return func(c *gin.Context) {
		id := session.GetLoginUserID(c)
		if id == "" {
			entity.AbortWithError(c, service.ErrUnauthorized)
			return
		}
		user, err := userService.GetUser(id)
		if err != nil {
			if errors.Is(err, service.ErrProfileNotFound) && !accountActions[action] {
				err = service.ErrUnauthorized
			}
			entity.AbortWithError(c, err)
			return
		}

		decision := service.Authorize(user, action)
		if !decision.Allowed {
			entity.AbortWithError(c, service.NewForbiddenError(decision.Reason))
			return
		}
		session.SetLoginUser(c, user)
		c.Next()
	}
}

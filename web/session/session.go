// Package session holds the authenticated caller for the lifetime of one
// request. Nothing is kept between requests.
package session

import (
	"github.com/careerconnect/careerconnect/database/model"

	"github.com/gin-gonic/gin"
)

const (
	loginUserID = "LOGIN_USER_ID"
	loginUser   = "LOGIN_USER"
)

func SetLoginUserID(c *gin.Context, id string) {
	c.Set(loginUserID, id)
}

// GetLoginUserID returns the id from a verified bearer token, or "".
func GetLoginUserID(c *gin.Context) string {
	return c.GetString(loginUserID)
}

func SetLoginUser(c *gin.Context, user *model.User) {
	c.Set(loginUser, user)
	c.Set(loginUserID, user.ID)
}

// GetLoginUser returns the caller loaded by the authorization middleware.
func GetLoginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get(loginUser); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

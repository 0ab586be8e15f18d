// Package entity defines the response bodies shared by controllers and middleware.
package entity

import (
	"github.com/careerconnect/careerconnect/web/locale"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/gin-gonic/gin"
)

// Msg is the body of every failed request.
type Msg struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorMsg localizes err for c and returns it with its status code. The
// underlying cause is only exposed for server errors.
func ErrorMsg(c *gin.Context, err error) (int, Msg) {
	e := service.AsError(err)
	m := Msg{Message: locale.Localize(c, e.Key, e.Default, e.Params)}
	if e.Kind == service.KindServer && e.Err != nil {
		m.Error = e.Err.Error()
	}
	return e.Kind.HTTPStatus(), m
}

// AbortWithError writes err as the response and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	status, m := ErrorMsg(c, err)
	c.AbortWithStatusJSON(status, m)
}

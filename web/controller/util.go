package controller

import (
	"errors"
	"io"

	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/web/entity"
	"github.com/careerconnect/careerconnect/web/locale"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// jsonError renders err with the status its kind maps to.
func jsonError(c *gin.Context, err error) {
	if e := service.AsError(err); e.Kind == service.KindServer {
		logger.Warningf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	entity.AbortWithError(c, err)
}

// message is the localized text for key with fallback as the English text.
func message(c *gin.Context, key, fallback string) string {
	return locale.Localize(c, key, fallback, nil)
}

// bindJSON decodes the request body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		jsonError(c, service.NewValidationError("Invalid request body"))
		return false
	}
	return true
}

// bindStrictJSON is bindJSON that also rejects keys dst does not declare.
func bindStrictJSON(c *gin.Context, dst any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			jsonError(c, service.NewValidationError("Request body is required"))
		} else {
			jsonError(c, service.NewValidationError("Invalid request body: %s", err.Error()))
		}
		return false
	}
	return true
}

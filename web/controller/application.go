package controller

import (
	"net/http"

	"github.com/careerconnect/careerconnect/web/middleware"
	"github.com/careerconnect/careerconnect/web/service"
	"github.com/careerconnect/careerconnect/web/session"

	"github.com/gin-gonic/gin"
)

// ApplicationController handles job applications for applicants and admins.
type ApplicationController struct {
	BaseController

	applicationService service.ApplicationService
}

func NewApplicationController(g *gin.RouterGroup, auth *service.AuthService) *ApplicationController {
	a := &ApplicationController{BaseController: BaseController{authService: auth}}
	a.initRouter(g)
	return a
}

func (a *ApplicationController) initRouter(g *gin.RouterGroup) {
	m := a.member(g)
	m.POST("/apply/:jobId", can(service.ApplyToJob), a.apply)
	m.GET("/my", can(service.ListOwnApplications), a.listMine)

	admin := a.admin(g.Group("/admin"))
	admin.Use(can(service.ManageApplications))
	admin.GET("/all", a.listAll)
	admin.PUT("/status/:id", a.setStatus)
	admin.DELETE("/delete/:id", a.deleteApplication)
}

func (a *ApplicationController) apply(c *gin.Context) {
	var in service.ApplyInput
	if !bindJSON(c, &in) {
		return
	}
	app, err := a.applicationService.Apply(session.GetLoginUserID(c), c.Param("jobId"), in)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.Set(middleware.CreatedIDKey, app.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message":     message(c, "applications.submitted", "Application submitted successfully!"),
		"application": app,
	})
}

func (a *ApplicationController) listMine(c *gin.Context) {
	apps, err := a.applicationService.GetUserApplications(session.GetLoginUserID(c))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (a *ApplicationController) listAll(c *gin.Context) {
	apps, err := a.applicationService.GetAllApplications()
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(apps), "applications": apps})
}

func (a *ApplicationController) setStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if !bindJSON(c, &req) {
		return
	}
	app, err := a.applicationService.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     message(c, "applications.statusUpdated", "Status updated successfully!"),
		"application": app,
	})
}

func (a *ApplicationController) deleteApplication(c *gin.Context) {
	if err := a.applicationService.DeleteApplication(c.Param("id")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message(c, "applications.deleted", "Application deleted successfully!")})
}

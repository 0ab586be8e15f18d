package controller

import (
	"net/http"

	"github.com/careerconnect/careerconnect/web/middleware"
	"github.com/careerconnect/careerconnect/web/service"
	"github.com/careerconnect/careerconnect/web/session"

	"github.com/gin-gonic/gin"
)

// JobController serves the public job board and its admin management.
type JobController struct {
	BaseController

	jobService service.JobService
}

func NewJobController(g *gin.RouterGroup, auth *service.AuthService) *JobController {
	a := &JobController{BaseController: BaseController{authService: auth}}
	a.initRouter(g)
	return a
}

func (a *JobController) initRouter(g *gin.RouterGroup) {
	g.GET("", a.getJobs)
	g.GET("/:id", a.getJob)

	admin := a.admin(g)
	admin.Use(can(service.ManageJobs))
	admin.POST("", a.createJob)
	admin.PUT("/:id", a.updateJob)
	admin.DELETE("/:id", a.deleteJob)
}

func (a *JobController) getJobs(c *gin.Context) {
	jobs, err := a.jobService.GetJobs()
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (a *JobController) getJob(c *gin.Context) {
	job, err := a.jobService.GetJob(c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (a *JobController) createJob(c *gin.Context) {
	var in service.JobInput
	if !bindJSON(c, &in) {
		return
	}
	job, err := a.jobService.CreateJob(session.GetLoginUserID(c), in)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.Set(middleware.CreatedIDKey, job.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": message(c, "jobs.created", "Job created successfully!"),
		"job":     job,
	})
}

func (a *JobController) updateJob(c *gin.Context) {
	var patch service.JobPatch
	if !bindJSON(c, &patch) {
		return
	}
	job, err := a.jobService.UpdateJob(c.Param("id"), patch)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message(c, "jobs.updated", "Job updated successfully!"),
		"job":     job,
	})
}

func (a *JobController) deleteJob(c *gin.Context) {
	if err := a.jobService.DeleteJob(c.Param("id")); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message(c, "jobs.deleted", "Job deleted successfully!")})
}

package service

import (
	"strings"

	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"
	"github.com/careerconnect/careerconnect/logger"
)

type ApplicationService struct {
	jobService JobService
}

// ApplyInput is the body of an application.
type ApplyInput struct {
	Resume      string `json:"resume"`
	CoverLetter string `json:"coverLetter"`
}

// Apply submits the caller's application to jobID. The (job, user) unique
// index turns a concurrent or repeated submission into ErrAlreadyApplied.
func (s *ApplicationService) Apply(userID, jobID string, in ApplyInput) (*model.Application, error) {
	job, err := s.jobService.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	resume := strings.TrimSpace(in.Resume)
	if resume == "" {
		return nil, ErrResumeRequired
	}

	app := &model.Application{
		JobID:       job.ID,
		UserID:      userID,
		Resume:      resume,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		Status:      model.StatusPending,
	}
	if err := database.GetDB().Create(app).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	app.Job = &model.JobRef{ID: job.ID, Title: job.Title, Company: job.Company}
	logger.Infof("user %s applied to job %s", userID, job.ID)
	return app, nil
}

// GetUserApplications returns the caller's applications, newest first.
func (s *ApplicationService) GetUserApplications(userID string) ([]model.Application, error) {
	apps := make([]model.Application, 0)
	err := database.GetDB().Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	if err := populateApplications(apps, false); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetAllApplications returns every application with job and applicant.
func (s *ApplicationService) GetAllApplications() ([]model.Application, error) {
	apps := make([]model.Application, 0)
	if err := database.GetDB().Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	if err := populateApplications(apps, true); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationService) GetApplication(id string) (*model.Application, error) {
	var app model.Application
	if err := database.GetDB().Where("id = ?", id).First(&app).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// SetStatus moves an application to status. Any status may follow any
// other; only membership in the closed set is checked.
func (s *ApplicationService) SetStatus(id string, status string) (*model.Application, error) {
	st := model.ApplicationStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	app, err := s.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if err := database.GetDB().Model(app).Update("status", st).Error; err != nil {
		return nil, err
	}
	app.Status = st
	apps := []model.Application{*app}
	if err := populateApplications(apps, true); err != nil {
		return nil, err
	}
	return &apps[0], nil
}

func (s *ApplicationService) DeleteApplication(id string) error {
	res := database.GetDB().Where("id = ?", id).Delete(&model.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func populateApplications(apps []model.Application, withUser bool) error {
	jobIDs := make([]string, 0, len(apps))
	userIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		jobIDs = append(jobIDs, a.JobID)
		userIDs = append(userIDs, a.UserID)
	}
	jobs, err := loadJobRefs(jobIDs)
	if err != nil {
		return err
	}
	var users map[string]*model.UserRef
	if withUser {
		if users, err = loadUserRefs(userIDs); err != nil {
			return err
		}
	}
	for i := range apps {
		apps[i].Job = jobs[apps[i].JobID]
		if withUser {
			apps[i].User = users[apps[i].UserID]
		}
	}
	return nil
}

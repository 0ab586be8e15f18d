package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusReviewed ApplicationStatus = "Reviewed"
	StatusApproved ApplicationStatus = "Approved"
	StatusRejected ApplicationStatus = "Rejected"
)

// ApplicationStatuses lists every status an application may hold.
var ApplicationStatuses = []ApplicationStatus{StatusPending, StatusReviewed, StatusApproved, StatusRejected}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is a user's submission to a job. A user holds at most one
// application per job.
type Application struct {
	ID          string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	JobID       string            `json:"jobId" gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_user"`
	UserID      string            `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_user;index"`
	Job         *JobRef           `json:"job" gorm:"-"`
	User        *UserRef          `json:"user" gorm:"-"`
	Resume      string            `json:"resume" gorm:"not null"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(16);not null;default:Pending"`
	CreatedAt   time.Time         `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (a *Application) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

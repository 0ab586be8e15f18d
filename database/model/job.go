package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Job struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" gorm:"not null"`
	Company     string    `json:"company" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Location    string    `json:"location" gorm:"not null"`
	Salary      *float64  `json:"salary,omitempty"`
	PostedByID  string    `json:"postedById" gorm:"type:varchar(36);index;not null"`
	Poster      *UserRef  `json:"postedBy" gorm:"-"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

// JobRef is the projection of a job embedded in applications.
type JobRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

func (JobRef) TableName() string { return "jobs" }

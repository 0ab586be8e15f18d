// Package model holds the persisted CareerConnect entities.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(16);not null;default:user"`
	Profile      Profile   `json:"profile" gorm:"embedded;embeddedPrefix:profile_"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Profile is the résumé data a user maintains alongside their account.
// Every field is optional.
type Profile struct {
	FullName        string `json:"fullName,omitempty"`
	Address         string `json:"address,omitempty"`
	Phone           string `json:"phone,omitempty"`
	DOB             string `json:"dob,omitempty" gorm:"column:dob"`
	Education       string `json:"education,omitempty"`
	Degree          string `json:"degree,omitempty"`
	YearCompleted   string `json:"yearCompleted,omitempty"`
	Projects        string `json:"projects,omitempty"`
	Skills          string `json:"skills,omitempty"`
	Certifications  string `json:"certifications,omitempty"`
	PositionApplied string `json:"positionApplied,omitempty"`
}

// UserRef is the public projection of a user embedded in jobs and
// applications.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (UserRef) TableName() string { return "users" }

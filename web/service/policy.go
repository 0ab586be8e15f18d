package service

import "github.com/careerconnect/careerconnect/database/model"

// Action names something a caller wants to do. Every protected route is
// guarded by exactly one action.
type Action string

const (
	ViewOwnProfile      Action = "profile:view"
	UpdateOwnProfile    Action = "profile:update"
	DeleteOwnAccount    Action = "profile:delete"
	ViewRecommendations Action = "profile:recommendations"
	ApplyToJob          Action = "applications:apply"
	ListOwnApplications Action = "applications:own"
	Logout              Action = "session:logout"

	ListUsers          Action = "users:list"
	ManageJobs         Action = "jobs:manage"
	ManageApplications Action = "applications:manage"
	ViewAuditLog       Action = "admin:audit"
	ViewServerStatus   Action = "admin:status"
)

var adminActions = map[Action]bool{
	ListUsers:          true,
	ManageJobs:         true,
	ManageApplications: true,
	ViewAuditLog:       true,
	ViewServerStatus:   true,
}

var memberActions = map[Action]bool{
	ViewOwnProfile:      true,
	UpdateOwnProfile:    true,
	DeleteOwnAccount:    true,
	ViewRecommendations: true,
	ApplyToJob:          true,
	ListOwnApplications: true,
	Logout:              true,
}

// Decision is the outcome of a policy check. Reason is empty when allowed.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Authorize decides whether user may perform action.
func Authorize(user *model.User, action Action) Decision {
	if user == nil {
		return deny("Authentication required")
	}
	switch {
	case memberActions[action]:
		return allow()
	case adminActions[action]:
		if user.IsAdmin() {
			return allow()
		}
		return deny("Access denied: admin only")
	}
	return deny("Unknown action")
}

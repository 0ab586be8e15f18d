package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failure for the HTTP layer.
type ErrorKind int

const (
	KindServer ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// HTTPStatus maps the kind to a response code. Conflicts are reported as a
// plain 400 rather than 409 to stay compatible with existing clients.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Error is returned by every service operation that fails for a reason the
// caller should see. Key identifies the translated message and Default is
// the English text used when no translation exists.
type Error struct {
	Kind    ErrorKind
	Key     string
	Default string
	Params  map[string]any
	Err     error
}

func (e *Error) Error() string {
	msg := e.Default
	if msg == "" {
		msg = e.Key
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same kind and key, so the sentinels
// below work with errors.Is even after being wrapped with a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Key == t.Key
}

func (e *Error) withCause(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

var (
	ErrDuplicateEmail       = &Error{Kind: KindConflict, Key: "users.duplicateEmail", Default: "User already exists"}
	ErrInvalidCredentials   = &Error{Kind: KindConflict, Key: "users.invalidCredentials", Default: "Invalid Email or Password"}
	ErrUserNotFound         = &Error{Kind: KindValidation, Key: "users.resetUnknownEmail", Default: "User not found!"}
	ErrProfileNotFound      = &Error{Kind: KindNotFound, Key: "users.notFound", Default: "User not found"}
	ErrInvalidResetToken    = &Error{Kind: KindConflict, Key: "users.invalidResetToken", Default: "Invalid token or user not found"}
	ErrUnauthorized         = &Error{Kind: KindUnauthorized, Key: "auth.unauthorized", Default: "Not authorized, token missing or invalid"}
	ErrJobNotFound          = &Error{Kind: KindNotFound, Key: "jobs.notFound", Default: "Job not found"}
	ErrJobFieldsRequired    = &Error{Kind: KindValidation, Key: "jobs.fieldsRequired", Default: "All required fields must be filled"}
	ErrApplicationNotFound  = &Error{Kind: KindNotFound, Key: "applications.notFound", Default: "Application not found"}
	ErrAlreadyApplied       = &Error{Kind: KindConflict, Key: "applications.alreadyApplied", Default: "You already applied for this job"}
	ErrResumeRequired       = &Error{Kind: KindValidation, Key: "applications.resumeRequired", Default: "Resume is required"}
	ErrInvalidStatus        = &Error{Kind: KindValidation, Key: "applications.invalidStatus", Default: "Status must be one of Pending, Reviewed, Approved, Rejected"}
	ErrRegistrationRequired = &Error{Kind: KindValidation, Key: "users.registrationRequired", Default: "Name, email and password are required"}
	ErrInvalidEmail         = &Error{Kind: KindValidation, Key: "users.invalidEmail", Default: "Email address is not valid"}
	ErrPasswordTooShort     = &Error{Kind: KindValidation, Key: "users.passwordTooShort", Default: "Password must be at least {{.Min}} characters", Params: map[string]any{"Min": MinPasswordLength}}
)

// NewValidationError reports malformed input that has no dedicated message.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Key: "errors.invalidRequest", Default: fmt.Sprintf(format, args...)}
}

// NewForbiddenError carries a policy denial reason to the caller.
func NewForbiddenError(reason string) *Error {
	return &Error{Kind: KindForbidden, Key: "auth.forbidden", Default: reason}
}

// AsError extracts the service error from err. Anything that is not a
// service error becomes a KindServer error wrapping the original.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindServer, Key: "errors.server", Default: "Server error", Err: err}
}

package common

import (
	"errors"
	"runtime/debug"

	"github.com/careerconnect/careerconnect/logger"
)

// Combine joins the non-nil errors, returning nil when there are none.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover must be deferred directly. It logs a panic together with its stack
// and returns the recovered value.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, " panic: ", panicErr, "\n", string(debug.Stack()))
		}
	}
	return panicErr
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the whole domain. Usecases wrap these with context via
// fmt.Errorf("...: %w", Err...) and the HTTP layer maps them to status codes
// with errors.Is, so no handler ever matches on message substrings.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrWindowClosed      = errors.New("window closed")
	ErrAlreadyRequested  = errors.New("already requested")
	ErrAlreadyReviewed   = errors.New("already reviewed")
	ErrDuplicateColor    = errors.New("duplicate color")
	ErrConflict          = errors.New("conflict")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

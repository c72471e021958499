package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSection  = errors.New("unknown section")
	ErrFallbackItem    = errors.New("fallback items cannot be modified, migrate the section first")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrWrongGrouping   = errors.New("section does not support this grouping")
	ErrEmptyFile       = errors.New("file is empty")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionNotFound    = errors.New("session not found")
)

// ValidationError collects every problem found in an input before any store call.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// BatchError reports a batch of writes in which some, but not necessarily all, failed.
// Writes that succeeded stay committed.
type BatchError struct {
	Op        string
	Succeeded int
	Total     int
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: %d of %d succeeded: %v", e.Op, e.Succeeded, e.Total, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Package domain holds the error types shared by the section and page
// services.
package domain

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-sections/internal/validation"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError rejects caller input. Field names the offending input and
// Issues, when present, locate problems inside a payload.
type ValidationError struct {
	Field  string
	Err    error
	Issues []validation.Issue
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// Invalid builds a ValidationError, lifting payload issues out of err.
func Invalid(field string, err error) *ValidationError {
	verr := &ValidationError{Field: field, Err: err}
	var issuer interface{ IssueList() []validation.Issue }
	if errors.As(err, &issuer) {
		verr.Issues = issuer.IssueList()
	}
	return verr
}

// NotFoundError is returned when a resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IssuesOf returns the payload issues carried by err, if any.
func IssuesOf(err error) []validation.Issue {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Issues
	}
	return nil
}

package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sections/internal/domain"
)

const (
	validationFailedCode = "SECTIONS_COMMAND_VALIDATION_FAILED"
	contextCanceledCode  = "SECTIONS_COMMAND_CONTEXT_CANCELED"
	contextTimeoutCode   = "SECTIONS_COMMAND_CONTEXT_TIMEOUT"
	contextErrorCode     = "SECTIONS_COMMAND_CONTEXT_ERROR"
	executeFailedCode    = "SECTIONS_COMMAND_EXECUTION_FAILED"
	executeRejectedCode  = "SECTIONS_COMMAND_INPUT_REJECTED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(validationFailedCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(contextCanceledCode)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(contextTimeoutCode)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(contextErrorCode)
	}
}

// wrapExecuteError categorises service failures. Validation errors raised by
// the store keep the validation category.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, domain.ErrValidation) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "command input rejected").
			WithTextCode(executeRejectedCode)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapContextError(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(executeFailedCode)
}

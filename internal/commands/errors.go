package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeValidation    = "COMMAND_VALIDATION_FAILED"
	TextCodeCanceled      = "COMMAND_CONTEXT_CANCELED"
	TextCodeTimeout       = "COMMAND_CONTEXT_TIMEOUT"
	TextCodeContextError  = "COMMAND_CONTEXT_ERROR"
	TextCodeExecuteFailed = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(TextCodeValidation)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(TextCodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(TextCodeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(TextCodeContextError)
	}
}

// wrapExecuteError keeps categorised errors as they are, so a not-found from
// the article store still reads as not-found to callers.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	var categorised interface{ Categorised() *goerrors.Error }
	if errors.As(err, &categorised) {
		return categorised.Categorised()
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(TextCodeExecuteFailed)
}

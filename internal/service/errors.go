package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/famfin/fintrack/internal/auth"
	"github.com/famfin/fintrack/internal/models"
)

// toConnectError maps a domain error onto a Connect status code. Errors that
// are already *connect.Error pass through unchanged.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, models.ErrAlreadyExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, models.ErrUnknownCategory), errors.Is(err, models.ErrValidation):
		return connect.CodeInvalidArgument
	case errors.Is(err, models.ErrCategoryInUse):
		return connect.CodeFailedPrecondition
	case errors.Is(err, models.ErrWrongCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.CodeUnauthenticated
	case errors.Is(err, models.ErrStorage):
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}

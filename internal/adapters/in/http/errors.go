package http

import (
	"context"
	"errors"
	"net/http"

	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, errs.ErrInvariantViolation):
		return http.StatusConflict
	case errors.Is(err, errs.ErrResourceUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrCapacityExceeded):
		return http.StatusInsufficientStorage
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an Error body. Internal failures keep their
// details out of the response.
func respondError(ctx echo.Context, err error, fallback string) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = fallback
	}
	return ctx.JSON(code, Error{Code: code, Message: msg})
}

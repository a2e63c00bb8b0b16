package http

import (
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/metrics"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// classify maps an application error to its HTTP status, the public error
// title and the dispatch outcome label.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, "Validation failed", metrics.OutcomeInvalid
	case errors.Is(err, errs.ErrCapacityExceeded):
		return http.StatusBadRequest, "Driver capacity exceeded", metrics.OutcomeCapacityExceeded
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "Not found", metrics.OutcomeNotFound
	case errors.Is(err, errs.ErrIllegalTransition):
		return http.StatusConflict, "Illegal status transition", metrics.OutcomeConflict
	case errors.Is(err, errs.ErrInsufficientStock):
		return http.StatusConflict, "Insufficient stock", metrics.OutcomeConflict
	default:
		return http.StatusInternalServerError, "Internal server error", metrics.OutcomeError
	}
}

// internalDetails replaces the details of every 500 response.
const internalDetails = "unexpected failure"

// writeError renders err as {error, details}. Internal errors are logged and
// their details withheld from the caller.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	status, title, _ := classify(err)

	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return c.JSON(status, ErrorResponse{Error: title, Details: internalDetails})
	}

	return c.JSON(status, ErrorResponse{Error: title, Details: err.Error()})
}

func badRequest(c echo.Context, details string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: details})
}

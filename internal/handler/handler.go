package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"formhub/internal/errors"
	"formhub/internal/validation"
)

// respondError maps a domain error to its HTTP response. Internal failures
// are logged in full and surfaced with a generic message only.
func respondError(c echo.Context, err error) error {
	status, body := errors.MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.JSON(status, body)
}

// validationFailed renders a 422 with the aggregated field violations.
func validationFailed(c echo.Context, message string, err error) error {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return respondError(c, err)
	}
	return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{
		Message: message,
		Errors:  verrs,
	})
}

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

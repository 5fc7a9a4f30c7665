package http

import (
	"errors"
	"net/http"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errInvalidRequest marks request bodies and parameters that could not be parsed.
var errInvalidRequest = errors.New("invalid request")

// statusOf maps an application error to the HTTP status reported to the client.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, order.ErrDomainValidation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler writes every error as an Error body. Internal errors are logged and their
// details hidden from the client.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := statusOf(err)
	message := err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zapRequest(c, err)...)
		message = http.StatusText(status)
	}

	if writeErr := c.JSON(status, Error{Code: status, Message: message}); writeErr != nil {
		s.logger.Error("write error response", zapRequest(c, writeErr)...)
	}
}

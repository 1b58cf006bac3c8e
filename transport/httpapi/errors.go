package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// Error codes of the response body.
const (
	CodeNotFound            = "not_found"
	CodeNotAvailable        = "not_available"
	CodeConflict            = "conflict"
	CodeForbidden           = "forbidden"
	CodeOverRelease         = "over_release"
	CodeInvalidInput        = "invalid_input"
	CodeUnauthorized        = "unauthorized"
	CodeConcurrencyConflict = "concurrency_conflict"
	CodeInternalError       = "internal_error"
)

// retryAfterSeconds is sent with a concurrency conflict. The request is safe to repeat as is.
const retryAfterSeconds = "1"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errBadRequest wraps binding and path parameter errors.
var errBadRequest = errors.New("malformed request")

func statusAndCodeOf(err error) (int, string) {
	var validationErrors validator.ValidationErrors
	var httpError *echo.HTTPError

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, errBadRequest), errors.As(err, &validationErrors):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.As(err, &httpError):
		return httpError.Code, codeOfStatus(httpError.Code)
	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		return http.StatusServiceUnavailable, CodeConcurrencyConflict
	}

	switch core.Kind(err) {
	case core.ErrNotFound:
		return http.StatusNotFound, CodeNotFound
	case core.ErrNotAvailable:
		return http.StatusConflict, CodeNotAvailable
	case core.ErrConflict:
		return http.StatusConflict, CodeConflict
	case core.ErrForbidden:
		return http.StatusForbidden, CodeForbidden
	case core.ErrInvalidInput:
		return http.StatusBadRequest, CodeInvalidInput
	case core.ErrOverRelease:
		return http.StatusInternalServerError, CodeOverRelease
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

func codeOfStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidInput
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusInternalServerError:
		return CodeInternalError
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code := statusAndCodeOf(err)
		message := err.Error()

		var httpError *echo.HTTPError
		if errors.As(err, &httpError) {
			if m, ok := httpError.Message.(string); ok {
				message = m
			}
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"code", code,
				"error", err.Error(),
			)

			if code == CodeInternalError {
				message = http.StatusText(status)
			}
		}

		if code == CodeConcurrencyConflict {
			c.Response().Header().Set(echo.HeaderRetryAfter, retryAfterSeconds)
		}

		if writeErr := c.JSON(status, ErrorResponse{Error: message, Code: code}); writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "writing error response failed", "error", writeErr.Error())
		}
	}
}

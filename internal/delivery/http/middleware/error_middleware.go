package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	deliverycontext "usergate/internal/delivery/context"
	"usergate/internal/delivery/http/response"
	domainerrors "usergate/internal/domain/errors"
	"usergate/internal/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// The request-scoped logger carries the request ID; fall back to the
	// process logger for errors raised before the request-ID middleware ran.
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	// Application errors carry their own HTTP code and user-facing message.
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				"error", err.Error(),
				"code", appErr.ErrorCode(),
				"path", c.Request().URL.Path,
				"method", c.Request().Method,
			)
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			message = s
		}
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	// Anything unmapped is an internal fault: log the cause, return the
	// generic message, never the raw error text.
	logger.Error("Unhandled error",
		"error", err.Error(),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	fallback := domainerrors.ErrInternal
	_ = response.Error(c, fallback.HTTPCode(), fallback.ErrorCode(), fallback.Message(), "")
}

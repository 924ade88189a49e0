package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/leave_management/internal/service"
	"github.com/Skotchmaster/leave_management/internal/tokens"
)

const (
	msgInvalidBody    = "Invalid request body"
	msgInternalServer = "Internal server error"
	msgSecretMissing  = "JWT secret is not configured properly"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidResetToken):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// httpError maps a service error to a response. Unexpected failures expose their message
// unless internalMsg is set, in which case that fixed text is sent instead.
func httpError(l *slog.Logger, event string, err error, internalMsg string) error {
	code := statusOf(err)
	if code != http.StatusInternalServerError {
		l.Warn(event, "status", code, "error", err)
		return echo.NewHTTPError(code, service.Message(err))
	}

	l.Error(event, "status", code, "error", err)
	msg := err.Error()
	switch {
	case errors.Is(err, tokens.ErrSecretMissing):
		msg = msgSecretMissing
	case internalMsg != "":
		msg = internalMsg
	}
	return echo.NewHTTPError(code, msg).SetInternal(err)
}

func badBody(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/leave_management/internal/logging"
	"github.com/Skotchmaster/leave_management/internal/middleware/auth"
	"github.com/Skotchmaster/leave_management/internal/service"
	"github.com/Skotchmaster/leave_management/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "register_error", err)
	}

	if _, err := h.Svc.Register(ctx, req.Input()); err != nil {
		return httpError(l, "register_error", err, "")
	}

	return c.JSON(http.StatusCreated, transport.MessageResponse{Message: "User registered successfully"})
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "login_error", err)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(l, "login_error", err, "")
	}

	return c.JSON(http.StatusOK, transport.TokenResponse{Token: res.Token})
}

func (h *UserHTTP) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.forgot_password")

	var req transport.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "forgot_password_error", err)
	}

	if err := h.Svc.ForgotPassword(ctx, req.Email); err != nil {
		return httpError(l, "forgot_password_error", err, msgInternalServer)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Password reset email sent successfully"})
}

func (h *UserHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.reset_password")

	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "reset_password_error", err)
	}

	if err := h.Svc.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		return httpError(l, "reset_password_error", err, msgInternalServer)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Password reset successful"})
}

// Me returns the user loaded by LoadCurrentUser.
func (h *UserHTTP) Me(c echo.Context) error {
	user, ok := auth.UserFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, transport.UserResponse{User: user})
}

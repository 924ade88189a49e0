package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/leave_management/internal/middleware/auth"
	"github.com/Skotchmaster/leave_management/internal/models"
)

type Deps struct {
	UserHandler  *UserHTTP
	LeaveHandler *LeaveHTTP
	Auth         *auth.Authenticator
	// Ready reports whether the backing store is reachable.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready").SetInternal(err)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	approvers := auth.RequireRoles(models.RoleManager, models.RoleAdmin)

	users := e.Group("/users")
	users.POST("/register", d.UserHandler.Register)
	users.POST("/login", d.UserHandler.Login)
	users.POST("/forgot-password", d.UserHandler.ForgotPassword)
	users.POST("/reset-password", d.UserHandler.ResetPassword)
	users.GET("/me", d.UserHandler.Me, d.Auth.RequireAuth, d.Auth.LoadCurrentUser)

	leave := e.Group("/leave", d.Auth.RequireAuth)
	leave.POST("/create", d.LeaveHandler.Create)
	leave.GET("", d.LeaveHandler.ListOwn)
	leave.GET("/list", d.LeaveHandler.ListOwn)
	leave.GET("/all-list", d.LeaveHandler.ListAll, approvers)
	leave.PUT("/:id/status", d.LeaveHandler.UpdateStatus, d.Auth.LoadCurrentUser)
	leave.PUT("/:id/update", d.LeaveHandler.Edit)
	leave.DELETE("/:id/delete", d.LeaveHandler.Delete)
	leave.DELETE("/delete-all", d.LeaveHandler.DeleteAll, approvers)
}

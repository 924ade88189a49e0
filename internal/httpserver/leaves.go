package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/leave_management/internal/logging"
	"github.com/Skotchmaster/leave_management/internal/middleware/auth"
	"github.com/Skotchmaster/leave_management/internal/models"
	"github.com/Skotchmaster/leave_management/internal/service"
	"github.com/Skotchmaster/leave_management/internal/transport"
)

const msgLeaveUpdated = "Leave request updated successfully"

type LeaveHTTP struct {
	Svc *service.LeaveService
}

func actor(c echo.Context) (models.Actor, error) {
	a, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return models.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Authorization token not provided")
	}
	return a, nil
}

func (h *LeaveHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leave.create")

	a, err := actor(c)
	if err != nil {
		return err
	}

	var req transport.CreateLeaveRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_leave_error", err)
	}

	lr, err := h.Svc.Create(ctx, a, req.Input())
	if err != nil {
		return httpError(l, "create_leave_error", err, "")
	}

	return c.JSON(http.StatusCreated, transport.LeaveResponse{
		Message:      "Leave request created successfully",
		LeaveRequest: lr,
	})
}

func (h *LeaveHTTP) ListOwn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leave.list")

	a, err := actor(c)
	if err != nil {
		return err
	}

	list, err := h.Svc.ListOwn(ctx, a)
	if err != nil {
		return httpError(l, "list_leave_error", err, "")
	}
	return c.JSON(http.StatusOK, transport.LeaveListResponse{LeaveRequests: list})
}

func (h *LeaveHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leave.all_list")

	a, err := actor(c)
	if err != nil {
		return err
	}

	list, err := h.Svc.ListAll(ctx, a)
	if err != nil {
		return httpError(l, "list_all_leave_error", err, "")
	}
	return c.JSON(http.StatusOK, transport.LeaveListResponse{LeaveRequests: list})
}

func (h *LeaveHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leave.update_status", "leave_id", c.Param("id"))

	a, err := actor(c)
	if err != nil {
		return err
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_status_error", err)
	}

	lr, err := h.Svc.UpdateStatus(ctx, a, c.Param("id"), req.Input())
	if err != nil {
		return httpError(l, "update_status_error", err, "")
	}
	return c.JSON(http.StatusOK, transport.LeaveResponse{Message: msgLeaveUpdated, LeaveRequest: lr})
}

func (h *LeaveHTTP) Edit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leave.edit", "leave_id", c.Param("id"))

	a, err := actor(c)
	if err != nil {
		return err
	}

	var req transport.EditLeaveRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "edit_leave_error", err)
	}

	lr, err := h.Svc.Edit(ctx, a, c.Param("id"), req.Input())
	if err != nil {
		return httpError(l, "edit_leave_error", err, "")
	}
	return c.JSON(http.StatusOK, transport.LeaveResponse{Message: msgLeaveUpdated, LeaveRequest: lr})
}

func (h *LeaveHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leave.delete", "leave_id", c.Param("id"))

	a, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, a, c.Param("id")); err != nil {
		return httpError(l, "delete_leave_error", err, "")
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Leave request deleted successfully"})
}

func (h *LeaveHTTP) DeleteAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "leave.delete_all")

	a, err := actor(c)
	if err != nil {
		return err
	}

	if _, err := h.Svc.DeleteAll(ctx, a); err != nil {
		return httpError(l, "delete_all_leave_error", err, "")
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "All leave requests deleted successfully"})
}

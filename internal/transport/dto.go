package transport

import (
	"github.com/Skotchmaster/leave_management/internal/models"
	"github.com/Skotchmaster/leave_management/internal/service"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Input() service.RegisterInput {
	return service.RegisterInput{Username: r.Username, Email: r.Email, Password: r.Password}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type CreateLeaveRequest struct {
	UserName     string   `json:"userName"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Reason       string   `json:"reason"`
	Type         string   `json:"type"`
	NumberOfDays *float64 `json:"numberOfDays"`
	Substitute   string   `json:"substitute"`
}

func (r CreateLeaveRequest) Input() service.CreateLeaveInput {
	return service.CreateLeaveInput{
		UserName:     r.UserName,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Reason:       r.Reason,
		Type:         r.Type,
		NumberOfDays: r.NumberOfDays,
		Substitute:   r.Substitute,
	}
}

type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func (r UpdateStatusRequest) Input() service.StatusInput {
	return service.StatusInput{Status: r.Status, Comment: r.Comment}
}

// EditLeaveRequest fields are all optional; empty values leave the stored ones untouched.
type EditLeaveRequest struct {
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Reason       string   `json:"reason"`
	Type         string   `json:"type"`
	NumberOfDays *float64 `json:"numberOfDays"`
	Substitute   string   `json:"substitute"`
}

func (r EditLeaveRequest) Input() service.EditLeaveInput {
	return service.EditLeaveInput{
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Reason:       r.Reason,
		Type:         r.Type,
		NumberOfDays: r.NumberOfDays,
		Substitute:   r.Substitute,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

type LeaveResponse struct {
	Message      string               `json:"message"`
	LeaveRequest *models.LeaveRequest `json:"leaveRequest"`
}

type LeaveListResponse struct {
	LeaveRequests []models.LeaveRequest `json:"leaveRequests"`
}

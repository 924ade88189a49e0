package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/leave_management/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	ResetPassword(ctx context.Context, id, token, passwordHash string, now time.Time) error
	SetRole(ctx context.Context, email string, role models.Role) (*models.User, error)
}

type LeaveRepository interface {
	CreateLeave(ctx context.Context, lr *models.LeaveRequest) error
	GetLeave(ctx context.Context, id string) (*models.LeaveRequest, error)
	ListLeavesByUser(ctx context.Context, userID string) ([]models.LeaveRequest, error)
	ListLeaves(ctx context.Context) ([]models.LeaveRequest, error)
	UpdateLeaveStatus(ctx context.Context, id string, status models.LeaveStatus, c *models.Comment) (*models.LeaveRequest, error)
	EditLeave(ctx context.Context, id string, patch models.LeavePatch) (*models.LeaveRequest, error)
	DeleteLeave(ctx context.Context, id string) error
	DeleteOwnLeave(ctx context.Context, id, userID string) error
	DeleteAllLeaves(ctx context.Context) (int64, error)
}

// Publisher emits domain events; *mykafka.Producer implements it.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

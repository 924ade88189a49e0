package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/leave_management/internal/models"
)

type store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	ResetPassword(ctx context.Context, id, token, passwordHash string, now time.Time) error
	SetRole(ctx context.Context, email string, role models.Role) (*models.User, error)

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

var (
	_ store = (*GormRepo)(nil)
	_ store = (*MongoRepo)(nil)
)

func newLeave(userID string) *models.LeaveRequest {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &models.LeaveRequest{
		UserID:       userID,
		UserName:     "ann",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 2),
		Reason:       "flu",
		Type:         models.LeaveSick,
		NumberOfDays: 3,
		Substitute:   "bob",
	}
}

func runStoreContract(t *testing.T, open func(t *testing.T) store) {
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		s := open(t)

		u := &models.User{Username: "ann", Email: "ann@example.com", PasswordHash: "h1"}
		require.NoError(t, s.CreateUser(ctx, u))
		require.NotEmpty(t, u.ID)
		assert.Equal(t, models.RoleUser, u.Role)

		dup := &models.User{Username: "ann2", Email: "ann@example.com", PasswordHash: "h2"}
		require.ErrorIs(t, s.CreateUser(ctx, dup), ErrDuplicate)

		got, err := s.GetUserByEmail(ctx, "ann@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "h1", got.PasswordHash)

		_, err = s.GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, ErrNotFound)

		promoted, err := s.SetRole(ctx, "ann@example.com", models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, promoted.Role)
		_, err = s.SetRole(ctx, "nobody@example.com", models.RoleAdmin)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("reset token is single use", func(t *testing.T) {
		s := open(t)
		now := time.Now().UTC()

		u := &models.User{Username: "ann", Email: "reset@example.com", PasswordHash: "old"}
		require.NoError(t, s.CreateUser(ctx, u))
		require.NoError(t, s.SetResetToken(ctx, u.ID, "tok", now.Add(time.Hour)))
		require.ErrorIs(t, s.SetResetToken(ctx, "missing", "tok", now), ErrNotFound)

		require.ErrorIs(t, s.ResetPassword(ctx, u.ID, "other", "new", now), ErrNotFound)
		require.ErrorIs(t, s.ResetPassword(ctx, u.ID, "tok", "new", now.Add(2*time.Hour)), ErrNotFound)

		require.NoError(t, s.ResetPassword(ctx, u.ID, "tok", "new", now))
		got, err := s.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "new", got.PasswordHash)
		assert.Nil(t, got.ResetToken)
		assert.Nil(t, got.ResetTokenExpiry)

		require.ErrorIs(t, s.ResetPassword(ctx, u.ID, "tok", "newer", now), ErrNotFound)
	})

	t.Run("leave lifecycle", func(t *testing.T) {
		s := open(t)

		lr := newLeave("u1")
		require.NoError(t, s.CreateLeave(ctx, lr))
		require.NotEmpty(t, lr.ID)
		assert.Equal(t, models.StatusPending, lr.Status)
		require.NoError(t, s.CreateLeave(ctx, newLeave("u2")))

		got, err := s.GetLeave(ctx, lr.ID)
		require.NoError(t, err)
		assert.Equal(t, "u1", got.UserID)
		assert.Equal(t, models.LeaveSick, got.Type)
		assert.True(t, lr.StartDate.Equal(got.StartDate))
		assert.NotNil(t, got.Comments)
		assert.Empty(t, got.Comments)

		own, err := s.ListLeavesByUser(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, own, 1)
		none, err := s.ListLeavesByUser(ctx, "u3")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
		all, err := s.ListLeaves(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		updated, err := s.UpdateLeaveStatus(ctx, lr.ID, models.StatusApproved,
			&models.Comment{Comment: "ok", CommentedBy: "m1", CommentedByName: "mia"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, updated.Status)
		updated, err = s.UpdateLeaveStatus(ctx, lr.ID, models.StatusRejected,
			&models.Comment{Comment: "changed my mind", CommentedBy: "m1", CommentedByName: "mia"})
		require.NoError(t, err)
		require.Len(t, updated.Comments, 2)
		assert.Equal(t, "ok", updated.Comments[0].Comment)
		assert.Equal(t, "changed my mind", updated.Comments[1].Comment)
		assert.Equal(t, "mia", updated.Comments[1].CommentedByName)

		_, err = s.UpdateLeaveStatus(ctx, "missing", models.StatusApproved, nil)
		require.ErrorIs(t, err, ErrNotFound)

		reason := "family"
		days := 1.5
		edited, err := s.EditLeave(ctx, lr.ID, models.LeavePatch{Reason: &reason, NumberOfDays: &days})
		require.NoError(t, err)
		assert.Equal(t, "family", edited.Reason)
		assert.Equal(t, 1.5, edited.NumberOfDays)
		assert.Equal(t, "bob", edited.Substitute)
		assert.Equal(t, models.StatusRejected, edited.Status)
		assert.Len(t, edited.Comments, 2)

		_, err = s.EditLeave(ctx, "missing", models.LeavePatch{Reason: &reason})
		require.ErrorIs(t, err, ErrNotFound)

		require.ErrorIs(t, s.DeleteOwnLeave(ctx, lr.ID, "u2"), ErrNotFound)
		require.NoError(t, s.DeleteOwnLeave(ctx, lr.ID, "u1"))
		_, err = s.GetLeave(ctx, lr.ID)
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, s.DeleteLeave(ctx, lr.ID), ErrNotFound)

		n, err := s.DeleteAllLeaves(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		all, err = s.ListLeaves(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

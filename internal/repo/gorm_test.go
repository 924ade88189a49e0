package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/leave_management/internal/db"
	"github.com/Skotchmaster/leave_management/internal/models"
)

func newSQLiteRepo(t *testing.T) *GormRepo {
	t.Helper()
	gdb, err := db.OpenGorm(context.Background(), "sqlite", filepath.Join(t.TempDir(), "leave.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseGorm(gdb) })

	r := NewGormRepo(gdb)
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func TestGormRepo_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) store { return newSQLiteRepo(t) })
}

func TestGormRepo_DeleteRemovesComments(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx := context.Background()

	lr := newLeave("u1")
	require.NoError(t, r.CreateLeave(ctx, lr))
	_, err := r.UpdateLeaveStatus(ctx, lr.ID, models.StatusApproved, &models.Comment{Comment: "ok"})
	require.NoError(t, err)

	require.NoError(t, r.DeleteLeave(ctx, lr.ID))

	var n int64
	require.NoError(t, r.DB.Model(&models.Comment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGormRepo_Ping(t *testing.T) {
	r := newSQLiteRepo(t)
	require.NoError(t, r.Ping(context.Background()))
}

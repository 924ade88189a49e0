package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnums(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleManager.Valid())
	assert.False(t, Role("root").Valid())
	assert.True(t, RoleAdmin.Approver())
	assert.True(t, RoleManager.Approver())
	assert.False(t, RoleUser.Approver())

	assert.True(t, StatusRejected.Valid())
	assert.False(t, LeaveStatus("cancelled").Valid())

	assert.Len(t, LeaveTypes, 10)
	assert.True(t, LeaveType("jury duty").Valid())
	assert.False(t, LeaveType("Sick Leave").Valid())
}

func TestLeavePatch_Apply(t *testing.T) {
	t.Parallel()

	lr := LeaveRequest{Reason: "flu", Type: LeaveSick, NumberOfDays: 2, Substitute: "bob"}
	assert.True(t, LeavePatch{}.Empty())

	reason := "family"
	days := 3.5
	p := LeavePatch{Reason: &reason, NumberOfDays: &days}
	require.False(t, p.Empty())
	p.Apply(&lr)

	assert.Equal(t, "family", lr.Reason)
	assert.Equal(t, 3.5, lr.NumberOfDays)
	assert.Equal(t, LeaveSick, lr.Type)
	assert.Equal(t, "bob", lr.Substitute)
}

func TestUser_JSONHidesSecrets(t *testing.T) {
	t.Parallel()

	tok := "reset"
	exp := time.Now()
	b, err := json.Marshal(User{ID: "1", Email: "a@b.c", PasswordHash: "hash", ResetToken: &tok, ResetTokenExpiry: &exp})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "reset")
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/leave_management/internal/logging"
	"github.com/Skotchmaster/leave_management/internal/models"
	"github.com/Skotchmaster/leave_management/internal/mykafka"
	"github.com/Skotchmaster/leave_management/internal/repo"
)

const (
	msgForbidden           = "Forbidden"
	msgLeaveNotFound       = "Leave request not found"
	msgLeaveNotFoundOrAuth = "Leave request not found or unauthorized to delete"
)

// Accepted date layouts, most specific last.
var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

type LeaveService struct {
	Leaves LeaveRepository
	Events Publisher
	Now    func() time.Time
}

type CreateLeaveInput struct {
	UserName     string
	StartDate    string
	EndDate      string
	Reason       string
	Type         string
	NumberOfDays *float64
	Substitute   string
}

type StatusInput struct {
	Status  string
	Comment string
}

// EditLeaveInput carries raw edit values; empty strings and zero days mean "not supplied".
type EditLeaveInput struct {
	StartDate    string
	EndDate      string
	Reason       string
	Type         string
	NumberOfDays *float64
	Substitute   string
}

func (s *LeaveService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", v)
}

type fieldErrors []string

func (f *fieldErrors) add(format string, args ...any) {
	*f = append(*f, fmt.Sprintf(format, args...))
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return newError(ErrValidation, "Leave validation failed: "+strings.Join(f, ", "))
}

func (s *LeaveService) Create(ctx context.Context, actor models.Actor, in CreateLeaveInput) (*models.LeaveRequest, error) {
	l := logging.FromContext(ctx).With("svc", "leave.create", "user_id", actor.ID)

	var errs fieldErrors
	required := []struct{ name, value string }{
		{"userName", in.UserName},
		{"startDate", in.StartDate},
		{"endDate", in.EndDate},
		{"reason", in.Reason},
		{"type", in.Type},
	}
	for _, f := range required {
		if f.value == "" {
			errs.add("%s is required", f.name)
		}
	}
	if in.NumberOfDays == nil {
		errs.add("numberOfDays is required")
	}

	lr := &models.LeaveRequest{
		UserID:     actor.ID,
		UserName:   in.UserName,
		Reason:     in.Reason,
		Type:       models.LeaveType(in.Type),
		Status:     models.StatusPending,
		Substitute: in.Substitute,
		Comments:   []models.Comment{},
	}
	if in.Type != "" && !lr.Type.Valid() {
		errs.add("type %q is not a valid leave type", in.Type)
	}
	if in.StartDate != "" {
		t, err := ParseDate(in.StartDate)
		if err != nil {
			errs.add("startDate: %v", err)
		}
		lr.StartDate = t
	}
	if in.EndDate != "" {
		t, err := ParseDate(in.EndDate)
		if err != nil {
			errs.add("endDate: %v", err)
		}
		lr.EndDate = t
	}
	if in.NumberOfDays != nil {
		lr.NumberOfDays = *in.NumberOfDays
	}
	if err := errs.err(); err != nil {
		l.Warn("create_leave_error", "status", 400, "error", err)
		return nil, err
	}

	if err := s.Leaves.CreateLeave(ctx, lr); err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}

	l.Info("leave_created", "leave_id", lr.ID)
	publish(ctx, s.Events, mykafka.TopicLeaveEvents, lr.ID, mykafka.LeaveEvent{
		Type:       mykafka.EventLeaveCreated,
		LeaveID:    lr.ID,
		UserID:     lr.UserID,
		ActorID:    actor.ID,
		Status:     string(lr.Status),
		LeaveType:  string(lr.Type),
		OccurredAt: s.now(),
	})
	return lr, nil
}

func (s *LeaveService) ListOwn(ctx context.Context, actor models.Actor) ([]models.LeaveRequest, error) {
	list, err := s.Leaves.ListLeavesByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return list, nil
}

func (s *LeaveService) ListAll(ctx context.Context, actor models.Actor) ([]models.LeaveRequest, error) {
	if !actor.Role.Approver() {
		return nil, newError(ErrForbidden, msgForbidden)
	}
	list, err := s.Leaves.ListLeaves(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return list, nil
}

// UpdateStatus applies to any request regardless of the caller's role or ownership.
func (s *LeaveService) UpdateStatus(ctx context.Context, actor models.Actor, id string, in StatusInput) (*models.LeaveRequest, error) {
	l := logging.FromContext(ctx).With("svc", "leave.update_status", "leave_id", id, "user_id", actor.ID)

	status := models.LeaveStatus(in.Status)
	if !status.Valid() {
		var errs fieldErrors
		if in.Status == "" {
			errs.add("status is required")
		} else {
			errs.add("status %q is not a valid status", in.Status)
		}
		return nil, errs.err()
	}

	var comment *models.Comment
	if in.Comment != "" {
		comment = &models.Comment{
			Comment:         in.Comment,
			CommentedBy:     actor.ID,
			CommentedByName: actor.Username,
			CreatedAt:       s.now(),
		}
	}

	lr, err := s.Leaves.UpdateLeaveStatus(ctx, id, status, comment)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, newError(ErrNotFound, msgLeaveNotFound)
		}
		return nil, fmt.Errorf("update leave status: %w", err)
	}

	l.Info("leave_status_updated", "new_status", status)
	publish(ctx, s.Events, mykafka.TopicLeaveEvents, lr.ID, mykafka.LeaveEvent{
		Type:       mykafka.EventLeaveStatusUpdated,
		LeaveID:    lr.ID,
		UserID:     lr.UserID,
		ActorID:    actor.ID,
		Status:     string(lr.Status),
		OccurredAt: s.now(),
	})
	return lr, nil
}

// Edit changes only the supplied fields and, like UpdateStatus, does not check ownership.
func (s *LeaveService) Edit(ctx context.Context, actor models.Actor, id string, in EditLeaveInput) (*models.LeaveRequest, error) {
	var (
		patch models.LeavePatch
		errs  fieldErrors
	)
	if in.StartDate != "" {
		if t, err := ParseDate(in.StartDate); err != nil {
			errs.add("startDate: %v", err)
		} else {
			patch.StartDate = &t
		}
	}
	if in.EndDate != "" {
		if t, err := ParseDate(in.EndDate); err != nil {
			errs.add("endDate: %v", err)
		} else {
			patch.EndDate = &t
		}
	}
	if in.Reason != "" {
		patch.Reason = &in.Reason
	}
	if in.Type != "" {
		lt := models.LeaveType(in.Type)
		if !lt.Valid() {
			errs.add("type %q is not a valid leave type", in.Type)
		}
		patch.Type = &lt
	}
	if in.NumberOfDays != nil && *in.NumberOfDays != 0 {
		patch.NumberOfDays = in.NumberOfDays
	}
	if in.Substitute != "" {
		patch.Substitute = &in.Substitute
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	lr, err := s.Leaves.EditLeave(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, newError(ErrNotFound, msgLeaveNotFound)
		}
		return nil, fmt.Errorf("edit leave request: %w", err)
	}

	logging.FromContext(ctx).Info("leave_edited", "svc", "leave.edit", "leave_id", id, "user_id", actor.ID)
	publish(ctx, s.Events, mykafka.TopicLeaveEvents, lr.ID, mykafka.LeaveEvent{
		Type:       mykafka.EventLeaveEdited,
		LeaveID:    lr.ID,
		UserID:     lr.UserID,
		ActorID:    actor.ID,
		OccurredAt: s.now(),
	})
	return lr, nil
}

// Delete lets approvers remove any request; everyone else only their own, and a miss on
// someone else's request looks exactly like a miss on a missing one.
func (s *LeaveService) Delete(ctx context.Context, actor models.Actor, id string) error {
	var err error
	if actor.Role.Approver() {
		err = s.Leaves.DeleteLeave(ctx, id)
	} else {
		err = s.Leaves.DeleteOwnLeave(ctx, id, actor.ID)
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			if actor.Role.Approver() {
				return newError(ErrNotFound, msgLeaveNotFound)
			}
			return newError(ErrNotFound, msgLeaveNotFoundOrAuth)
		}
		return fmt.Errorf("delete leave request: %w", err)
	}

	logging.FromContext(ctx).Info("leave_deleted", "svc", "leave.delete", "leave_id", id, "user_id", actor.ID)
	publish(ctx, s.Events, mykafka.TopicLeaveEvents, id, mykafka.LeaveEvent{
		Type:       mykafka.EventLeaveDeleted,
		LeaveID:    id,
		ActorID:    actor.ID,
		OccurredAt: s.now(),
	})
	return nil
}

func (s *LeaveService) DeleteAll(ctx context.Context, actor models.Actor) (int64, error) {
	if !actor.Role.Approver() {
		return 0, newError(ErrForbidden, msgForbidden)
	}
	n, err := s.Leaves.DeleteAllLeaves(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all leave requests: %w", err)
	}

	logging.FromContext(ctx).Warn("leave_all_deleted", "svc", "leave.delete_all", "user_id", actor.ID, "deleted", n)
	publish(ctx, s.Events, mykafka.TopicLeaveEvents, actor.ID, mykafka.LeaveEvent{
		Type:       mykafka.EventLeaveAllDeleted,
		ActorID:    actor.ID,
		Deleted:    n,
		OccurredAt: s.now(),
	})
	return n, nil
}

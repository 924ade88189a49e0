package mykafka

import "time"

const (
	TopicUserEvents  = "user_events"
	TopicLeaveEvents = "leave_events"
)

const (
	EventUserRegistered     = "user_registered"
	EventLeaveCreated       = "leave_created"
	EventLeaveStatusUpdated = "leave_status_updated"
	EventLeaveEdited        = "leave_edited"
	EventLeaveDeleted       = "leave_deleted"
	EventLeaveAllDeleted    = "leave_all_deleted"
)

type UserEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"userID"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurredAt"`
}

type LeaveEvent struct {
	Type       string    `json:"type"`
	LeaveID    string    `json:"leaveID,omitempty"`
	UserID     string    `json:"userID,omitempty"`
	ActorID    string    `json:"actorID"`
	Status     string    `json:"status,omitempty"`
	LeaveType  string    `json:"leaveType,omitempty"`
	Deleted    int64     `json:"deleted,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

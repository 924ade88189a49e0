package models

import (
	"time"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Approver reports whether the role may review and bulk-manage every leave request.
func (r Role) Approver() bool {
	return r == RoleManager || r == RoleAdmin
}

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type LeaveType string

const (
	LeaveVacation     LeaveType = "vacation"
	LeaveSick         LeaveType = "sick leave"
	LeavePersonal     LeaveType = "personal leave"
	LeaveMaternity    LeaveType = "maternity leave"
	LeavePaternity    LeaveType = "paternity leave"
	LeaveBereavement  LeaveType = "bereavement leave"
	LeaveUnpaid       LeaveType = "unpaid leave"
	LeaveCompensatory LeaveType = "compensatory leave"
	LeaveJuryDuty     LeaveType = "jury duty"
	LeaveOthers       LeaveType = "others"
)

var LeaveTypes = []LeaveType{
	LeaveVacation, LeaveSick, LeavePersonal, LeaveMaternity, LeavePaternity,
	LeaveBereavement, LeaveUnpaid, LeaveCompensatory, LeaveJuryDuty, LeaveOthers,
}

func (t LeaveType) Valid() bool {
	for _, v := range LeaveTypes {
		if t == v {
			return true
		}
	}
	return false
}

type User struct {
	ID               string     `gorm:"primaryKey;size:36"                      json:"id"       bson:"_id"`
	Username         string     `gorm:"not null"                                json:"username" bson:"username"`
	Email            string     `gorm:"uniqueIndex;not null"                    json:"email"    bson:"email"`
	PasswordHash     string     `gorm:"not null"                                json:"-"        bson:"password_hash"`
	Role             Role       `gorm:"type:varchar(16);not null;default:user"  json:"role"     bson:"role"`
	ResetToken       *string    `                                               json:"-"        bson:"reset_token,omitempty"`
	ResetTokenExpiry *time.Time `                                               json:"-"        bson:"reset_token_expiry,omitempty"`
	CreatedAt        time.Time  `                                               json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time  `                                               json:"updatedAt" bson:"updated_at"`
}

type LeaveRequest struct {
	ID           string      `gorm:"primaryKey;size:36"                       json:"id"           bson:"_id"`
	UserID       string      `gorm:"index;size:36;not null"                   json:"user"         bson:"user_id"`
	UserName     string      `gorm:"not null"                                 json:"userName"     bson:"user_name"`
	StartDate    time.Time   `gorm:"not null"                                 json:"startDate"    bson:"start_date"`
	EndDate      time.Time   `gorm:"not null"                                 json:"endDate"      bson:"end_date"`
	Reason       string      `gorm:"not null"                                 json:"reason"       bson:"reason"`
	Type         LeaveType   `gorm:"type:varchar(32);not null"                json:"type"         bson:"type"`
	Status       LeaveStatus `gorm:"type:varchar(16);not null;default:pending" json:"status"      bson:"status"`
	NumberOfDays float64     `gorm:"not null"                                 json:"numberOfDays" bson:"number_of_days"`
	Substitute   string      `                                                json:"substitute"   bson:"substitute"`
	Comments     []Comment   `gorm:"foreignKey:LeaveRequestID"                json:"comments"     bson:"comments"`
	CreatedAt    time.Time   `                                                json:"createdAt"    bson:"created_at"`
	UpdatedAt    time.Time   `                                                json:"updatedAt"    bson:"updated_at"`
}

// Comment is a reviewer note appended when a request's status changes.
type Comment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"  json:"-"               bson:"-"`
	LeaveRequestID  string    `gorm:"index;size:36;not null"    json:"-"               bson:"-"`
	Comment         string    `                                 json:"comment"         bson:"comment"`
	CommentedBy     string    `gorm:"size:36"                   json:"commentedBy"     bson:"commented_by"`
	CommentedByName string    `                                 json:"commentedByName" bson:"commented_by_name"`
	CreatedAt       time.Time `                                 json:"createdAt"       bson:"created_at"`
}

func (Comment) TableName() string {
	return "leave_comments"
}

// LeavePatch holds the fields an edit actually changes; nil means keep the stored value.
type LeavePatch struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Reason       *string
	Type         *LeaveType
	NumberOfDays *float64
	Substitute   *string
}

func (p LeavePatch) Empty() bool {
	return p.StartDate == nil && p.EndDate == nil && p.Reason == nil &&
		p.Type == nil && p.NumberOfDays == nil && p.Substitute == nil
}

// Apply copies the set fields onto lr.
func (p LeavePatch) Apply(lr *LeaveRequest) {
	if p.StartDate != nil {
		lr.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		lr.EndDate = *p.EndDate
	}
	if p.Reason != nil {
		lr.Reason = *p.Reason
	}
	if p.Type != nil {
		lr.Type = *p.Type
	}
	if p.NumberOfDays != nil {
		lr.NumberOfDays = *p.NumberOfDays
	}
	if p.Substitute != nil {
		lr.Substitute = *p.Substitute
	}
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID       string
	Email    string
	Role     Role
	Username string
}

package notification

import (
	"time"
)

// EventType names what happened; it is also the SSE event name.
type EventType string

const (
	TypeCheckIn       EventType = "attendance_check_in"
	TypeCheckOut      EventType = "attendance_check_out"
	TypeLunchStart    EventType = "attendance_lunch_start"
	TypeLunchEnd      EventType = "attendance_lunch_end"
	TypeLeaveRequest  EventType = "leave_request"
	TypeLeaveApproved EventType = "leave_approved"
	TypeLeaveRejected EventType = "leave_rejected"
)

// TopicAdmin is the feed every connected administrator listens to.
const TopicAdmin = "admin"

// Notification is one activity item pushed to the live feed.
type Notification struct {
	ID        string
	Type      EventType
	UserID    string
	Username  string
	Message   string
	Data      map[string]any
	CreatedAt time.Time
}

// LeaveRequestMail is the content of the administrator email sent for a new leave request.
type LeaveRequestMail struct {
	RequestID string
	Employee  string
	LeaveType string
	StartDate string
	EndDate   string
	Days      int
	Reason    string
}

package attendance

import (
	"context"
)

// AttendanceService covers the employee's daily actions and the administrator's review.
// Repeated or out-of-order actions are not errors: they come back with Changed=false and a notice.
type AttendanceService interface {
	CheckIn(ctx context.Context, userID string) (ActionResult, error)
	CheckOut(ctx context.Context, userID string) (ActionResult, error)
	StartLunch(ctx context.Context, userID string) (ActionResult, error)
	EndLunch(ctx context.Context, userID string) (ActionResult, error)

	// Mark checks in when there is no record today, checks out when the day is open.
	Mark(ctx context.Context, userID string) (ActionResult, error)

	Today(ctx context.Context, userID string) (TodayResponse, error)
	GetMyAttendance(ctx context.Context, userID string, filter AttendanceFilter) (ListAttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
}

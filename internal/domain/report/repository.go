package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
)

// ReportRepository loads the raw rows of a report, joined with the user's name.
type ReportRepository interface {
	// ListAttendanceInWindow returns records whose check-in falls in [from, to), ordered by user and check-in.
	ListAttendanceInWindow(ctx context.Context, from, to time.Time, userID *string) ([]attendance.Record, error)

	// ListApprovedLeavesInWindow returns approved requests overlapping the inclusive dates [firstDay, lastDay].
	ListApprovedLeavesInWindow(ctx context.Context, firstDay, lastDay time.Time, userID *string) ([]leave.LeaveRequest, error)
}

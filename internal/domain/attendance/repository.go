package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create returns ErrAlreadyCheckedIn when the user already has a record for the work date.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByUserAndDate returns nil without error when the user has no record that day.
	GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*Record, error)
	GetByID(ctx context.Context, id string) (Record, error)

	// Update writes the check-out and lunch columns.
	Update(ctx context.Context, record Record) (Record, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	// CreateLeaveDay inserts a leave-status record unless the user already has one that day.
	CreateLeaveDay(ctx context.Context, userID string, workDate time.Time, status string) (bool, error)
}

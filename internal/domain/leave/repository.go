package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// UpdateStatus only moves a pending request; ErrLeaveRequestAlreadyProcessed otherwise.
	UpdateStatus(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time) (LeaveRequest, error)

	// ListApprovedOverlapping returns approved requests sharing at least one day with [from, to].
	ListApprovedOverlapping(ctx context.Context, from, to time.Time, userID *string) ([]LeaveRequest, error)
}

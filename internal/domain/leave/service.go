package leave

import (
	"context"
)

type LeaveService interface {
	Submit(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, userID string, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	Get(ctx context.Context, id string) (LeaveRequestResponse, error)
	Approve(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
}

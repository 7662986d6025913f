package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	notifier notification.Service
	now      func() time.Time
}

func NewLeaveService(leaveRequestRepository leave.LeaveRequestRepository, notifier notification.Service) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		notifier:               notifier,
		now:                    time.Now,
	}
}

// Submit implements leave.LeaveService. The administrator email goes out in the background.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := s.LeaveRequestRepository.Create(ctx, req.ToEntity())
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to submit leave request: %w", err)
	}

	slog.Info("leave request submitted", "request_id", created.ID, "user_id", created.UserID, "type", created.LeaveType)

	resp := leave.NewLeaveRequestResponse(created)
	reason := ""
	if created.Reason != nil {
		reason = *created.Reason
	}
	s.queue(notification.TypeLeaveRequest, created, "solicitó "+created.LeaveType, &notification.LeaveRequestMail{
		RequestID: created.ID,
		Employee:  employeeName(created),
		LeaveType: created.LeaveType,
		StartDate: resp.StartDate,
		EndDate:   resp.EndDate,
		Days:      resp.Days,
		Reason:    reason,
	})

	return resp, nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, userID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.UserID = &userID
	return s.List(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: utils.TotalPages(total, filter.Limit),
		Showing:    utils.Showing(filter.Page, filter.Limit, total),
		Requests:   responses,
	}, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	if !validator.IsValidUUID(id) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	r, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(r), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	return s.review(ctx, req, leave.StatusApproved, notification.TypeLeaveApproved, "aprobada")
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	return s.review(ctx, req, leave.StatusRejected, notification.TypeLeaveRejected, "rechazada")
}

func (s *LeaveServiceImpl) review(ctx context.Context, req leave.ReviewLeaveRequest, status string, eventType notification.EventType, verb string) (leave.LeaveRequestResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, req.ID, status, req.ReviewerID, s.now())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request reviewed", "request_id", updated.ID, "status", updated.Status, "reviewed_by", req.ReviewerID)
	s.queue(eventType, updated, fmt.Sprintf("%s: solicitud %s", updated.LeaveType, verb), nil)

	return leave.NewLeaveRequestResponse(updated), nil
}

func (s *LeaveServiceImpl) queue(eventType notification.EventType, r leave.LeaveRequest, action string, mail *notification.LeaveRequestMail) {
	if s.notifier == nil {
		return
	}
	username := ""
	if r.Username != nil {
		username = *r.Username
	}
	s.notifier.Queue(notification.CreateNotificationRequest{
		Type:     eventType,
		UserID:   r.UserID,
		Username: username,
		Message:  fmt.Sprintf("%s %s", employeeName(r), action),
		Data: map[string]any{
			"request_id": r.ID,
			"leave_type": r.LeaveType,
			"start_date": r.StartDate.Format(validator.DateLayout),
			"end_date":   r.EndDate.Format(validator.DateLayout),
			"status":     r.Status,
		},
		Mail: mail,
	})
}

func employeeName(r leave.LeaveRequest) string {
	if r.FullName != nil && *r.FullName != "" {
		return *r.FullName
	}
	if r.Username != nil {
		return *r.Username
	}
	return r.UserID
}

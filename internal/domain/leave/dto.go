package leave

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

// MaxRequestDays bounds the inclusive length of a single leave request.
const MaxRequestDays = 366

type CreateLeaveRequestRequest struct {
	UserID    string  `json:"-"`
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD
	LeaveType string  `json:"leave_type"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}
	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	}
	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	}
	validator.ValidateDateRange(&errs, "start_date", &r.StartDate, "end_date", &r.EndDate)
	if start, ok := validator.IsValidDate(r.StartDate); ok {
		if end, ok := validator.IsValidDate(r.EndDate); ok && !end.Before(start) && OverlapDays(start, end, start, end) > MaxRequestDays {
			errs.Add("end_date", fmt.Sprintf("a leave request cannot span more than %d days", MaxRequestDays))
		}
	}

	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	} else if !validator.IsInSlice(r.LeaveType, TypeValues) {
		errs.Add("leave_type", "leave_type must be one of: Vacaciones, Enfermedad, Permiso Personal")
	}
	if r.Reason != nil && len(*r.Reason) > 500 {
		errs.Add("reason", "reason must not exceed 500 characters")
	}

	return errs.Err()
}

// ToEntity must only be called after Validate succeeded.
func (r *CreateLeaveRequestRequest) ToEntity() LeaveRequest {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	req := LeaveRequest{
		UserID:    r.UserID,
		StartDate: start,
		EndDate:   end,
		LeaveType: r.LeaveType,
		Status:    StatusPending,
	}
	if r.Reason != nil && !validator.IsEmpty(*r.Reason) {
		req.Reason = r.Reason
	}
	return req
}

// ReviewLeaveRequest is the admin decision on a pending request.
type ReviewLeaveRequest struct {
	ID         string `json:"-"`
	ReviewerID string `json:"-"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if !validator.IsValidUUID(r.ReviewerID) {
		errs.Add("reviewer_id", "reviewer_id must be a valid UUID")
	}
	return errs.Err()
}

type LeaveRequestFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	Status    *string `json:"status,omitempty"`
	LeaveType *string `json:"leave_type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.ValidatePagination(&errs, &f.Page, &f.Limit)
	if f.UserID != nil && *f.UserID != "" && !validator.IsValidUUID(*f.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, StatusValues) {
		errs.Add("status", "status must be one of: Pendiente, Aprobado, Rechazado")
	}
	if f.LeaveType != nil && *f.LeaveType != "" && !validator.IsInSlice(*f.LeaveType, TypeValues) {
		errs.Add("leave_type", "leave_type must be one of: Vacaciones, Enfermedad, Permiso Personal")
	}
	validator.ValidateDateRange(&errs, "start_date", f.StartDate, "end_date", f.EndDate)

	return errs.Err()
}

type LeaveRequestResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Username    *string `json:"username,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Days        int     `json:"days"`
	LeaveType   string  `json:"leave_type"`
	Reason      *string `json:"reason,omitempty"`
	Status      string  `json:"status"`
	RequestDate string  `json:"request_date"`
	ReviewedBy  *string `json:"reviewed_by,omitempty"`
	ReviewedAt  *string `json:"reviewed_at,omitempty"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Username:    r.Username,
		FullName:    r.FullName,
		StartDate:   r.StartDate.Format(validator.DateLayout),
		EndDate:     r.EndDate.Format(validator.DateLayout),
		Days:        r.Days(),
		LeaveType:   r.LeaveType,
		Reason:      r.Reason,
		Status:      r.Status,
		RequestDate: r.RequestDate.Format(time.RFC3339),
		ReviewedBy:  r.ReviewedBy,
	}
	if r.ReviewedAt != nil {
		at := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	return resp
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Showing    string                 `json:"showing"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

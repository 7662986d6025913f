package schedule

import (
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	Name               string `json:"name"`
	StartTime          string `json:"start_time"` // HH:MM
	EndTime            string `json:"end_time"`   // HH:MM
	GracePeriodMinutes *int   `json:"grace_period_minutes,omitempty"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	validateScheduleFields(&errs, r.Name, r.StartTime, r.EndTime, r.GracePeriodMinutes)
	return errs.Err()
}

// ToEntity must only be called after Validate succeeded.
func (r *CreateScheduleRequest) ToEntity() Schedule {
	grace := DefaultGracePeriodMinutes
	if r.GracePeriodMinutes != nil {
		grace = *r.GracePeriodMinutes
	}
	return Schedule{
		Name:               r.Name,
		StartTime:          MustParseTimeOfDay(r.StartTime),
		EndTime:            MustParseTimeOfDay(r.EndTime),
		GracePeriodMinutes: grace,
	}
}

type UpdateScheduleRequest struct {
	ID                 string `json:"-"`
	Name               string `json:"name"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	GracePeriodMinutes *int   `json:"grace_period_minutes,omitempty"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	validateScheduleFields(&errs, r.Name, r.StartTime, r.EndTime, r.GracePeriodMinutes)
	return errs.Err()
}

func (r *UpdateScheduleRequest) ToEntity() Schedule {
	s := (&CreateScheduleRequest{
		Name:               r.Name,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		GracePeriodMinutes: r.GracePeriodMinutes,
	}).ToEntity()
	s.ID = r.ID
	return s
}

func validateScheduleFields(errs *validator.ValidationErrors, name, start, end string, grace *int) {
	if validator.IsEmpty(name) {
		errs.Add("name", "name is required")
	} else if len(name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}

	startTime, startOK := validator.IsValidTimeOfDay(start)
	if !startOK {
		errs.Add("start_time", "start_time must be in HH:MM format")
	}
	endTime, endOK := validator.IsValidTimeOfDay(end)
	if !endOK {
		errs.Add("end_time", "end_time must be in HH:MM format")
	}
	if startOK && endOK && startTime >= endTime {
		errs.Add("end_time", "end_time must be after start_time")
	}

	if grace != nil && (*grace < 0 || *grace > 240) {
		errs.Add("grace_period_minutes", "grace_period_minutes must be between 0 and 240")
	}
}

type ScheduleResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	GracePeriodMinutes int    `json:"grace_period_minutes"`
	AssignedUsers      int    `json:"assigned_users"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func NewScheduleResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:                 s.ID,
		Name:               s.Name,
		StartTime:          s.StartTime.String(),
		EndTime:            s.EndTime.String(),
		GracePeriodMinutes: s.GracePeriodMinutes,
		AssignedUsers:      s.AssignedUsers,
		CreatedAt:          s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          s.UpdatedAt.Format(time.RFC3339),
	}
}

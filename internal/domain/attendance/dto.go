package attendance

import (
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

// ActionResult is the outcome of a check-in, check-out or lunch action.
// Record is nil when the user has no attendance for the day.
type ActionResult struct {
	Record  *Record
	Changed bool
	Notice  string
}

type ActionResponse struct {
	Changed    bool                `json:"changed"`
	Notice     string              `json:"notice"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

func NewActionResponse(r ActionResult, loc *time.Location) ActionResponse {
	resp := ActionResponse{Changed: r.Changed, Notice: r.Notice}
	if r.Record != nil {
		a := NewAttendanceResponse(*r.Record, loc)
		resp.Attendance = &a
	}
	return resp
}

type AttendanceFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	Status    *string `json:"status,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.ValidatePagination(&errs, &f.Page, &f.Limit)
	if f.UserID != nil && *f.UserID != "" && !validator.IsValidUUID(*f.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, StatusValues) {
		errs.Add("status", "status must be one of: A Tiempo, Tarde, Vacaciones, Ausente por Licencia")
	}
	validator.ValidateDateRange(&errs, "start_date", f.StartDate, "end_date", f.EndDate)

	return errs.Err()
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Username       *string `json:"username,omitempty"`
	FullName       *string `json:"full_name,omitempty"`
	WorkDate       string  `json:"work_date"`
	CheckInTime    string  `json:"check_in_time"`
	CheckOutTime   *string `json:"check_out_time,omitempty"`
	LunchStartTime *string `json:"lunch_start_time,omitempty"`
	LunchEndTime   *string `json:"lunch_end_time,omitempty"`
	Status         string  `json:"status"`
	WorkedHours    float64 `json:"worked_hours"`
}

// NewAttendanceResponse renders instants in loc.
func NewAttendanceResponse(r Record, loc *time.Location) AttendanceResponse {
	format := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.In(loc).Format(time.RFC3339)
		return &s
	}
	return AttendanceResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		Username:       r.Username,
		FullName:       r.FullName,
		WorkDate:       r.WorkDate.Format(validator.DateLayout),
		CheckInTime:    r.CheckInTime.In(loc).Format(time.RFC3339),
		CheckOutTime:   format(r.CheckOutTime),
		LunchStartTime: format(r.LunchStartTime),
		LunchEndTime:   format(r.LunchEndTime),
		Status:         r.Status,
		WorkedHours:    RoundHours(r.WorkedDuration()),
	}
}

// RoundHours converts d to hours with two decimals.
func RoundHours(d time.Duration) float64 {
	return float64(int64(d.Hours()*100+0.5)) / 100
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// TodayResponse feeds the employee dashboard.
type TodayResponse struct {
	Date       string              `json:"date"`
	DayStatus  string              `json:"day_status"`
	Schedule   string              `json:"schedule"`
	Deadline   string              `json:"on_time_until"`
	Actions    []string            `json:"actions"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

const (
	ActionCheckIn    = "check_in"
	ActionCheckOut   = "check_out"
	ActionLunchStart = "lunch_start"
	ActionLunchEnd   = "lunch_end"
)

// AvailableActions lists what the user can still do today given r.
func AvailableActions(r *Record) []string {
	switch {
	case r == nil:
		return []string{ActionCheckIn}
	case IsLeaveStatus(r.Status), r.CheckOutTime != nil:
		return []string{}
	case r.LunchStartTime == nil:
		return []string{ActionLunchStart, ActionCheckOut}
	case r.LunchEndTime == nil:
		return []string{ActionLunchEnd, ActionCheckOut}
	default:
		return []string{ActionCheckOut}
	}
}

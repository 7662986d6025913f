package leave

import (
	"time"
)

const (
	TypeVacation = "Vacaciones"
	TypeSick     = "Enfermedad"
	TypePersonal = "Permiso Personal"
)

var TypeValues = []string{TypeVacation, TypeSick, TypePersonal}

const (
	StatusPending  = "Pendiente"
	StatusApproved = "Aprobado"
	StatusRejected = "Rechazado"
)

var StatusValues = []string{StatusPending, StatusApproved, StatusRejected}

// LeaveRequest dates are civil dates; only their year, month and day are meaningful.
type LeaveRequest struct {
	ID          string
	UserID      string
	StartDate   time.Time
	EndDate     time.Time
	LeaveType   string
	Reason      *string
	Status      string
	RequestDate time.Time
	ReviewedBy  *string
	ReviewedAt  *time.Time

	// Read model
	Username *string
	FullName *string
}

// Days is the inclusive length of the request.
func (r LeaveRequest) Days() int {
	return OverlapDays(r.StartDate, r.EndDate, r.StartDate, r.EndDate)
}

// Covers reports whether day falls inside the request.
func (r LeaveRequest) Covers(day time.Time) bool {
	return OverlapDays(r.StartDate, r.EndDate, day, day) == 1
}

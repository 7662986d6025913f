package attendance

import (
	"time"
)

const (
	StatusOnTime   = "A Tiempo"
	StatusLate     = "Tarde"
	StatusVacation = "Vacaciones"
	StatusOnLeave  = "Ausente por Licencia"
)

var StatusValues = []string{StatusOnTime, StatusLate, StatusVacation, StatusOnLeave}

// IsLeaveStatus reports whether the record stands for a leave day instead of worked time.
func IsLeaveStatus(status string) bool {
	return status == StatusVacation || status == StatusOnLeave
}

// Day labels shown on the employee dashboard.
const (
	DayNotCheckedIn = "No ha marcado"
	DayCheckedIn    = "Entrada Marcada"
	DayCheckedOut   = "Salida Marcada"
)

type Record struct {
	ID             string
	UserID         string
	WorkDate       time.Time
	CheckInTime    time.Time
	CheckOutTime   *time.Time
	LunchStartTime *time.Time
	LunchEndTime   *time.Time
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Read model
	Username *string
	FullName *string
}

// DayStatus is the dashboard label for the day a record (possibly nil) belongs to.
func DayStatus(r *Record) string {
	switch {
	case r == nil:
		return DayNotCheckedIn
	case r.CheckOutTime == nil:
		return DayCheckedIn
	default:
		return DayCheckedOut
	}
}

// WorkedDuration is check-out minus check-in minus the lunch break.
// A record without check-out counts as zero; a lunch without end is not deducted.
func (r Record) WorkedDuration() time.Duration {
	if r.CheckOutTime == nil || IsLeaveStatus(r.Status) {
		return 0
	}
	worked := r.CheckOutTime.Sub(r.CheckInTime)
	if r.LunchStartTime != nil && r.LunchEndTime != nil {
		worked -= r.LunchEndTime.Sub(*r.LunchStartTime)
	}
	if worked < 0 {
		return 0
	}
	return worked
}

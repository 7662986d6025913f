package attendance

import (
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
)

// Shift is what the evaluator needs from a schedule.
type Shift struct {
	Start              schedule.TimeOfDay
	GracePeriodMinutes int
}

// DefaultShift applies to users without an assigned schedule: 08:05 sharp.
var DefaultShift = Shift{
	Start:              schedule.MustParseTimeOfDay("08:05"),
	GracePeriodMinutes: 0,
}

// ShiftFor returns the shift of s, or fallback when no schedule is assigned.
func ShiftFor(s *schedule.Schedule, fallback Shift) Shift {
	if s == nil {
		return fallback
	}
	return Shift{Start: s.StartTime, GracePeriodMinutes: s.GracePeriodMinutes}
}

// Deadline is the last on-time instant on the calendar day of day.
func (s Shift) Deadline(day time.Time) time.Time {
	return s.Start.Add(time.Duration(s.GracePeriodMinutes) * time.Minute).On(day)
}

// Evaluate returns StatusOnTime when checkIn is at or before the shift deadline
// of its own calendar day, StatusLate otherwise.
func Evaluate(checkIn time.Time, shift Shift) string {
	if checkIn.After(shift.Deadline(checkIn)) {
		return StatusLate
	}
	return StatusOnTime
}

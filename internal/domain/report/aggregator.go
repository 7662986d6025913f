package report

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
)

// Window is the half-open reporting period [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds the window covering the calendar days first..last in loc.
func NewWindow(first, last time.Time, loc *time.Location) Window {
	y, m, d := first.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	y, m, d = last.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return Window{Start: start, End: end}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// LastDay is the final calendar day of the window, used as the inclusive bound for leave ranges.
func (w Window) LastDay() time.Time {
	return w.End.AddDate(0, 0, -1)
}

type UserSummary struct {
	UserID         string
	Username       string
	FullName       string
	DiasTrabajados int // every record with a check-in, leave days included
	DiasAsistidos  int // DiasTrabajados without leave-status records
	TotalTardanzas int
	HorasTotales   time.Duration
	DiasVacaciones int
	DiasEnfermedad int
	DiasPermiso    int
}

// Hours is HorasTotales rounded to two decimals.
func (s UserSummary) Hours() float64 {
	return attendance.RoundHours(s.HorasTotales)
}

// DisplayName prefers the full name and falls back to the username.
func (s UserSummary) DisplayName() string {
	if s.FullName != "" {
		return s.FullName
	}
	return s.Username
}

// Aggregate builds one summary per user that has attendance in w, sorted by user id.
// Approved leave overlapping w is attributed to those users only.
func Aggregate(records []attendance.Record, leaves []leave.LeaveRequest, w Window) []UserSummary {
	byUser := make(map[string]*UserSummary)

	for _, r := range records {
		if !w.Contains(r.CheckInTime) {
			continue
		}
		s, ok := byUser[r.UserID]
		if !ok {
			s = &UserSummary{UserID: r.UserID}
			if r.Username != nil {
				s.Username = *r.Username
			}
			if r.FullName != nil {
				s.FullName = *r.FullName
			}
			byUser[r.UserID] = s
		}

		s.DiasTrabajados++
		if attendance.IsLeaveStatus(r.Status) {
			continue
		}
		s.DiasAsistidos++
		if r.Status == attendance.StatusLate {
			s.TotalTardanzas++
		}
		s.HorasTotales += r.WorkedDuration()
	}

	lastDay := w.LastDay()
	for _, l := range leaves {
		s, ok := byUser[l.UserID]
		if !ok || l.Status != leave.StatusApproved {
			continue
		}
		days := leave.OverlapDays(l.StartDate, l.EndDate, w.Start, lastDay)
		switch l.LeaveType {
		case leave.TypeVacation:
			s.DiasVacaciones += days
		case leave.TypeSick:
			s.DiasEnfermedad += days
		case leave.TypePersonal:
			s.DiasPermiso += days
		}
	}

	out := make([]UserSummary, 0, len(byUser))
	for _, s := range byUser {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

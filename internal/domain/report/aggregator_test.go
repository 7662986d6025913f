package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
)

func day(d int) time.Time {
	return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC)
}

func fullDay(userID string, d int, status string) attendance.Record {
	at := func(h int) *time.Time {
		v := day(d).Add(time.Duration(h) * time.Hour)
		return &v
	}
	name := "user " + userID
	return attendance.Record{
		UserID:         userID,
		WorkDate:       day(d),
		CheckInTime:    *at(8),
		LunchStartTime: at(12),
		LunchEndTime:   at(13),
		CheckOutTime:   at(17),
		Status:         status,
		Username:       &name,
	}
}

func TestAggregate_TwoUsersThreeDays(t *testing.T) {
	w := NewWindow(day(1), day(31), time.UTC)
	var records []attendance.Record
	for _, u := range []string{"b", "a"} {
		for d := 4; d <= 6; d++ {
			status := attendance.StatusOnTime
			if d == 5 && u == "a" {
				status = attendance.StatusLate
			}
			records = append(records, fullDay(u, d, status))
		}
	}

	got := Aggregate(records, nil, w)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].UserID)
	assert.Equal(t, "b", got[1].UserID)
	for _, s := range got {
		assert.Equal(t, 3, s.DiasTrabajados)
		assert.Equal(t, 24*time.Hour, s.HorasTotales)
		assert.Equal(t, 24.0, s.Hours())
	}
	assert.Equal(t, 1, got[0].TotalTardanzas)
	assert.Equal(t, 0, got[1].TotalTardanzas)
	assert.Equal(t, "user a", got[0].DisplayName())
}

func TestAggregate_SevenHourDays(t *testing.T) {
	w := NewWindow(day(1), day(31), time.UTC)
	var records []attendance.Record
	for _, u := range []string{"a", "b"} {
		for d := 4; d <= 6; d++ {
			r := fullDay(u, d, attendance.StatusOnTime)
			out := r.CheckInTime.Add(8 * time.Hour)
			r.CheckOutTime = &out
			records = append(records, r)
		}
	}

	for _, s := range Aggregate(records, nil, w) {
		assert.Equal(t, 21.0, s.Hours())
		assert.Equal(t, 3, s.DiasTrabajados)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, nil, NewWindow(day(1), day(31), time.UTC))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregate_SkipsRecordsOutsideWindow(t *testing.T) {
	w := NewWindow(day(5), day(5), time.UTC)
	got := Aggregate([]attendance.Record{fullDay("a", 4, attendance.StatusOnTime), fullDay("a", 6, attendance.StatusOnTime)}, nil, w)
	assert.Empty(t, got)
}

func TestAggregate_OpenRecordsAndLeaveDays(t *testing.T) {
	w := NewWindow(day(1), day(31), time.UTC)
	open := fullDay("a", 4, attendance.StatusLate)
	open.CheckOutTime = nil
	vacation := attendance.Record{UserID: "a", WorkDate: day(18), CheckInTime: day(18), Status: attendance.StatusVacation}

	got := Aggregate([]attendance.Record{open, vacation}, nil, w)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].DiasTrabajados)
	assert.Equal(t, 1, got[0].DiasAsistidos)
	assert.Equal(t, 1, got[0].TotalTardanzas)
	assert.Zero(t, got[0].HorasTotales)
}

func TestAggregate_LeaveRecordsCountAsCheckIns(t *testing.T) {
	w := NewWindow(day(1), day(31), time.UTC)
	vacation := attendance.Record{UserID: "a", WorkDate: day(18), CheckInTime: day(18), Status: attendance.StatusVacation}
	onLeave := attendance.Record{UserID: "a", WorkDate: day(19), CheckInTime: day(19), Status: attendance.StatusOnLeave}

	got := Aggregate([]attendance.Record{fullDay("a", 4, attendance.StatusOnTime), vacation, onLeave}, nil, w)

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].DiasTrabajados)
	assert.Equal(t, 1, got[0].DiasAsistidos)
	assert.Equal(t, 8*time.Hour, got[0].HorasTotales)
	assert.Zero(t, got[0].TotalTardanzas)
}

func TestAggregate_LeaveTotalsPerType(t *testing.T) {
	w := NewWindow(day(1), time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC), time.UTC)
	records := []attendance.Record{fullDay("a", 4, attendance.StatusOnTime)}
	leaves := []leave.LeaveRequest{
		{UserID: "a", StartDate: day(18), EndDate: day(22), LeaveType: leave.TypeVacation, Status: leave.StatusApproved},
		{UserID: "a", StartDate: time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), LeaveType: leave.TypeVacation, Status: leave.StatusApproved},
		{UserID: "a", StartDate: day(25), EndDate: day(26), LeaveType: leave.TypeSick, Status: leave.StatusApproved},
		{UserID: "a", StartDate: day(27), EndDate: day(27), LeaveType: leave.TypePersonal, Status: leave.StatusApproved},
		{UserID: "a", StartDate: day(28), EndDate: day(29), LeaveType: leave.TypeSick, Status: leave.StatusPending},
		{UserID: "nobody", StartDate: day(1), EndDate: day(5), LeaveType: leave.TypeVacation, Status: leave.StatusApproved},
	}

	got := Aggregate(records, leaves, w)

	require.Len(t, got, 1)
	assert.Equal(t, 5+3, got[0].DiasVacaciones)
	assert.Equal(t, 2, got[0].DiasEnfermedad)
	assert.Equal(t, 1, got[0].DiasPermiso)
}

func TestNewWindow(t *testing.T) {
	loc := time.FixedZone("COT", -5*60*60)
	w := NewWindow(day(1), day(31), loc)

	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, loc), w.Start)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, loc), w.End)
	assert.Equal(t, 31, w.LastDay().Day())
	assert.True(t, w.Contains(time.Date(2025, 8, 31, 23, 59, 59, 0, loc)))
	assert.False(t, w.Contains(w.End))
}

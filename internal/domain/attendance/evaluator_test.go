package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
)

func TestEvaluate(t *testing.T) {
	loc := time.FixedZone("COT", -5*60*60)
	shift := Shift{Start: schedule.MustParseTimeOfDay("08:00"), GracePeriodMinutes: 5}
	at := func(h, m, s int) time.Time { return time.Date(2025, 8, 4, h, m, s, 0, loc) }

	tests := []struct {
		name    string
		checkIn time.Time
		want    string
	}{
		{"early", at(7, 30, 0), StatusOnTime},
		{"exact start", at(8, 0, 0), StatusOnTime},
		{"inside grace", at(8, 4, 59), StatusOnTime},
		{"deadline is on time", at(8, 5, 0), StatusOnTime},
		{"one second late", at(8, 5, 1), StatusLate},
		{"afternoon", at(14, 0, 0), StatusLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.checkIn, shift))
		})
	}
}

func TestEvaluate_DefaultShift(t *testing.T) {
	day := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusOnTime, Evaluate(day.Add(8*time.Hour+5*time.Minute), DefaultShift))
	assert.Equal(t, StatusLate, Evaluate(day.Add(8*time.Hour+5*time.Minute+time.Second), DefaultShift))
}

func TestShiftFor(t *testing.T) {
	fallback := Shift{Start: schedule.MustParseTimeOfDay("09:00")}
	assert.Equal(t, fallback, ShiftFor(nil, fallback))

	s := &schedule.Schedule{StartTime: schedule.MustParseTimeOfDay("07:30"), GracePeriodMinutes: 10}
	got := ShiftFor(s, fallback)
	assert.Equal(t, schedule.MustParseTimeOfDay("07:30"), got.Start)
	assert.Equal(t, 10, got.GracePeriodMinutes)
}

func TestShift_DeadlineUsesDayLocation(t *testing.T) {
	loc := time.FixedZone("COT", -5*60*60)
	shift := Shift{Start: schedule.MustParseTimeOfDay("08:00"), GracePeriodMinutes: 5}

	got := shift.Deadline(time.Date(2025, 8, 4, 23, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2025, 8, 4, 8, 5, 0, 0, loc), got)
}

func TestShift_DeadlineOnDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	shift := Shift{Start: schedule.MustParseTimeOfDay("08:00"), GracePeriodMinutes: 5}

	for _, d := range []int{9, 10} {
		day := time.Date(2025, 3, d, 12, 0, 0, 0, loc)
		assert.Equal(t, time.Date(2025, 3, d, 8, 5, 0, 0, loc), shift.Deadline(day))
		assert.Equal(t, StatusOnTime, Evaluate(time.Date(2025, 3, d, 8, 5, 0, 0, loc), shift))
		assert.Equal(t, StatusLate, Evaluate(time.Date(2025, 3, d, 8, 5, 1, 0, loc), shift))
	}
}

func TestRecord_WorkedDuration(t *testing.T) {
	base := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)
	ptr := func(h, m int) *time.Time {
		v := base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
		return &v
	}

	full := Record{CheckInTime: *ptr(8, 0), CheckOutTime: ptr(17, 0), LunchStartTime: ptr(12, 0), LunchEndTime: ptr(13, 0), Status: StatusOnTime}
	assert.Equal(t, 8*time.Hour, full.WorkedDuration())

	openLunch := Record{CheckInTime: *ptr(8, 0), CheckOutTime: ptr(17, 0), LunchStartTime: ptr(12, 0), Status: StatusOnTime}
	assert.Equal(t, 9*time.Hour, openLunch.WorkedDuration())

	noCheckOut := Record{CheckInTime: *ptr(8, 0), Status: StatusLate}
	assert.Zero(t, noCheckOut.WorkedDuration())

	leave := Record{CheckInTime: *ptr(8, 0), CheckOutTime: ptr(17, 0), Status: StatusVacation}
	assert.Zero(t, leave.WorkedDuration())
}

func TestDayStatus(t *testing.T) {
	out := time.Now()
	assert.Equal(t, DayNotCheckedIn, DayStatus(nil))
	assert.Equal(t, DayCheckedIn, DayStatus(&Record{}))
	assert.Equal(t, DayCheckedOut, DayStatus(&Record{CheckOutTime: &out}))
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 7.5, RoundHours(7*time.Hour+30*time.Minute))
	assert.Equal(t, 0.33, RoundHours(20*time.Minute))
	assert.Equal(t, 0.0, RoundHours(0))
}

func TestAvailableActions(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	later := now.Add(4 * time.Hour)

	assert.Equal(t, []string{ActionCheckIn}, AvailableActions(nil))
	assert.Equal(t, []string{ActionLunchStart, ActionCheckOut}, AvailableActions(&Record{CheckInTime: now}))
	assert.Equal(t, []string{ActionLunchEnd, ActionCheckOut}, AvailableActions(&Record{CheckInTime: now, LunchStartTime: &later}))
	assert.Empty(t, AvailableActions(&Record{CheckInTime: now, CheckOutTime: &later}))
	assert.Empty(t, AvailableActions(&Record{Status: StatusVacation}))
}

package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlapDays(t *testing.T) {
	start, end := date(2025, 8, 18), date(2025, 8, 22)

	tests := []struct {
		name         string
		wStart, wEnd time.Time
		want         int
	}{
		{"window covers request", date(2025, 8, 1), date(2025, 9, 12), 5},
		{"window inside request", date(2025, 8, 20), date(2025, 8, 21), 2},
		{"disjoint", date(2025, 1, 1), date(2025, 1, 31), 0},
		{"touches first day", date(2025, 8, 10), date(2025, 8, 18), 1},
		{"touches last day", date(2025, 8, 22), date(2025, 8, 30), 1},
		{"day after end", date(2025, 8, 23), date(2025, 8, 30), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverlapDays(start, end, tt.wStart, tt.wEnd))
		})
	}
}

func TestOverlapDays_IgnoresClockAndZone(t *testing.T) {
	loc := time.FixedZone("COT", -5*60*60)
	start := time.Date(2025, 8, 18, 23, 30, 0, 0, loc)
	end := time.Date(2025, 8, 22, 0, 1, 0, 0, loc)

	assert.Equal(t, 5, OverlapDays(start, end, date(2025, 8, 1), date(2025, 9, 12)))
}

func TestOverlapDays_AcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	start := time.Date(2025, 3, 7, 0, 0, 0, 0, loc)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, loc)

	assert.Equal(t, 5, OverlapDays(start, end, start, end))
}

func TestOverlapDays_CenturiesLong(t *testing.T) {
	start, end := date(1700, 1, 1), date(2100, 1, 1)

	assert.Equal(t, 146098, OverlapDays(start, end, start, end))
	assert.Equal(t, 146098, LeaveRequest{StartDate: start, EndDate: end}.Days())
	assert.Equal(t, 31, OverlapDays(start, end, date(2025, 8, 1), date(2025, 8, 31)))
}

func TestLeaveRequest_DaysAndCovers(t *testing.T) {
	r := LeaveRequest{StartDate: date(2025, 8, 18), EndDate: date(2025, 8, 22)}

	assert.Equal(t, 5, r.Days())
	assert.True(t, r.Covers(date(2025, 8, 18)))
	assert.True(t, r.Covers(time.Date(2025, 8, 22, 17, 0, 0, 0, time.UTC)))
	assert.False(t, r.Covers(date(2025, 8, 23)))
}

package schedule

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

const DefaultGracePeriodMinutes = 5

type Schedule struct {
	ID                 string
	Name               string
	StartTime          TimeOfDay
	EndTime            TimeOfDay
	GracePeriodMinutes int
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Read model
	AssignedUsers int
}

// TimeOfDay is a wall clock time stored as the offset from midnight.
type TimeOfDay time.Duration

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	d, ok := validator.IsValidTimeOfDay(s)
	if !ok {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay(d), nil
}

// MustParseTimeOfDay panics on malformed input; meant for constants and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// On returns the instant the wall clock shows this time of day, on the calendar date of day
// and in its location. On DST transition days it is not midnight plus the offset.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, mo, d := day.Date()
	h, m, s := t.clock()
	return time.Date(y, mo, d, h, m, s, 0, day.Location())
}

// Add shifts the time of day by d; On normalizes values past midnight onto the next day.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d)
}

func (t TimeOfDay) clock() (h, m, s int) {
	d := time.Duration(t)
	return int(d / time.Hour), int(d % time.Hour / time.Minute), int(d % time.Minute / time.Second)
}

// String renders HH:MM, or HH:MM:SS when seconds are set.
func (t TimeOfDay) String() string {
	h, m, s := t.clock()
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

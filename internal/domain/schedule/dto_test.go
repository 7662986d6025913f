package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

func intPtr(i int) *int { return &i }

func TestCreateScheduleRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    CreateScheduleRequest
		fields []string
	}{
		{"valid", CreateScheduleRequest{Name: "Mañana", StartTime: "08:00", EndTime: "17:00"}, nil},
		{"missing name", CreateScheduleRequest{StartTime: "08:00", EndTime: "17:00"}, []string{"name"}},
		{"bad start", CreateScheduleRequest{Name: "x", StartTime: "8am", EndTime: "17:00"}, []string{"start_time"}},
		{"end equals start", CreateScheduleRequest{Name: "x", StartTime: "08:00", EndTime: "08:00"}, []string{"end_time"}},
		{"overnight", CreateScheduleRequest{Name: "x", StartTime: "22:00", EndTime: "06:00"}, []string{"end_time"}},
		{"negative grace", CreateScheduleRequest{Name: "x", StartTime: "08:00", EndTime: "17:00", GracePeriodMinutes: intPtr(-1)}, []string{"grace_period_minutes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			for _, f := range tt.fields {
				assert.Contains(t, verrs.ToMap(), f)
			}
		})
	}
}

func TestCreateScheduleRequest_ToEntityDefaultsGrace(t *testing.T) {
	req := CreateScheduleRequest{Name: "Tarde", StartTime: "14:00", EndTime: "22:00"}
	require.NoError(t, req.Validate())

	s := req.ToEntity()
	assert.Equal(t, DefaultGracePeriodMinutes, s.GracePeriodMinutes)
	assert.Equal(t, "14:00", s.StartTime.String())

	req.GracePeriodMinutes = intPtr(0)
	assert.Zero(t, req.ToEntity().GracePeriodMinutes)
}

func TestTimeOfDay_On(t *testing.T) {
	loc, err := time.LoadLocation("America/Guatemala")
	require.NoError(t, err)

	day := time.Date(2025, 8, 4, 15, 30, 0, 0, loc)
	got := MustParseTimeOfDay("08:05").On(day)

	assert.Equal(t, time.Date(2025, 8, 4, 8, 5, 0, 0, loc), got)
	assert.Equal(t, "08:05:30", MustParseTimeOfDay("08:05:30").String())
}

func TestTimeOfDay_OnKeepsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// clocks go forward at 02:00 on 2025-03-30 and back at 03:00 on 2025-10-26
	for _, d := range []time.Time{
		time.Date(2025, 3, 30, 15, 0, 0, 0, loc),
		time.Date(2025, 10, 26, 15, 0, 0, 0, loc),
	} {
		got := MustParseTimeOfDay("08:05").On(d)
		assert.Equal(t, 8, got.Hour())
		assert.Equal(t, 5, got.Minute())
	}

	late := MustParseTimeOfDay("23:50").Add(20 * time.Minute).On(time.Date(2025, 8, 4, 0, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2025, 8, 5, 0, 10, 0, 0, loc), late)
}

package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

const userID = "0198a2c4-7f00-7000-8000-00000000000a"

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]attendance.Record
	// raceOnCreate simulates a concurrent check-in landing first.
	raceOnCreate *attendance.Record
}

func key(userID string, day time.Time) string {
	return userID + "|" + day.Format(validator.DateLayout)
}

func (f *fakeAttendanceRepo) Create(_ context.Context, r attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceOnCreate != nil {
		f.records[key(r.UserID, r.WorkDate)] = *f.raceOnCreate
		f.raceOnCreate = nil
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	if _, ok := f.records[key(r.UserID, r.WorkDate)]; ok {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	r.ID = "0198a2c4-7f00-7000-8000-0000000000a1"
	f.records[key(r.UserID, r.WorkDate)] = r
	return r, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID string, day time.Time) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[key(userID, day)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, r attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[key(r.UserID, r.WorkDate)] = r
	return r, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) CreateLeaveDay(_ context.Context, userID string, day time.Time, status string) (bool, error) {
	if _, ok := f.records[key(userID, day)]; ok {
		return false, nil
	}
	f.records[key(userID, day)] = attendance.Record{UserID: userID, WorkDate: day, CheckInTime: day, Status: status}
	return true, nil
}

type fakeScheduleRepo struct {
	schedule.ScheduleRepository
	assigned *schedule.Schedule
}

func (f fakeScheduleRepo) GetByUserID(context.Context, string) (*schedule.Schedule, error) {
	return f.assigned, nil
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) Queue(req notification.CreateNotificationRequest) { f.queued = append(f.queued, req) }
func (f *fakeNotifier) Subscribe() (<-chan sse.Event, func()) { return nil, func() {} }
func (f *fakeNotifier) Stop() {}

type fixture struct {
	svc      *AttendanceServiceImpl
	repo     *fakeAttendanceRepo
	notifier *fakeNotifier
	now      time.Time
}

func (fx *fixture) at(hhmmss string) {
	t, err := time.Parse("15:04:05", hhmmss)
	if err != nil {
		panic(err)
	}
	fx.now = time.Date(2025, 3, 10, t.Hour(), t.Minute(), t.Second(), 0, fx.svc.loc)
}

func newFixture(t *testing.T, assigned *schedule.Schedule) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Guatemala")
	require.NoError(t, err)

	fx := &fixture{
		repo:     &fakeAttendanceRepo{records: make(map[string]attendance.Record)},
		notifier: &fakeNotifier{},
	}
	fx.svc = NewAttendanceService(fx.repo, fakeScheduleRepo{assigned: assigned}, fx.notifier, attendance.DefaultShift, loc).(*AttendanceServiceImpl)
	fx.svc.now = func() time.Time { return fx.now }
	fx.at("08:00:00")
	return fx
}

func TestCheckIn_EvaluatesAgainstDefaultShift(t *testing.T) {
	tests := []struct {
		name   string
		at     string
		status string
	}{
		{"early", "07:59:59", attendance.StatusOnTime},
		{"deadline", "08:05:00", attendance.StatusOnTime},
		{"one second late", "08:05:01", attendance.StatusLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, nil)
			fx.at(tt.at)

			res, err := fx.svc.CheckIn(context.Background(), userID)
			require.NoError(t, err)
			assert.True(t, res.Changed)
			assert.Equal(t, tt.status, res.Record.Status)
			assert.Contains(t, res.Notice, attendance.NoticeCheckedIn)
			assert.Contains(t, res.Notice, tt.status)
		})
	}
}

func TestCheckIn_UsesAssignedSchedule(t *testing.T) {
	fx := newFixture(t, &schedule.Schedule{
		Name:               "Turno Tarde",
		StartTime:          schedule.MustParseTimeOfDay("09:00"),
		GracePeriodMinutes: 10,
	})
	fx.at("09:09:59")

	res, err := fx.svc.CheckIn(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnTime, res.Record.Status)
}

func TestCheckIn_TwiceKeepsFirstTimestamp(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	first, err := fx.svc.CheckIn(ctx, userID)
	require.NoError(t, err)

	fx.at("08:30:00")
	second, err := fx.svc.CheckIn(ctx, userID)
	require.NoError(t, err)

	assert.False(t, second.Changed)
	assert.Equal(t, attendance.NoticeAlreadyCheckedIn, second.Notice)
	assert.True(t, first.Record.CheckInTime.Equal(second.Record.CheckInTime))
	assert.Equal(t, attendance.StatusOnTime, second.Record.Status)
	assert.Len(t, fx.notifier.queued, 1)
}

func TestCheckIn_ConcurrentInsertIsBenign(t *testing.T) {
	fx := newFixture(t, nil)
	winner := attendance.Record{ID: "winner", UserID: userID, WorkDate: fx.now, CheckInTime: fx.now, Status: attendance.StatusOnTime}
	fx.repo.raceOnCreate = &winner

	res, err := fx.svc.CheckIn(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, "winner", res.Record.ID)
	assert.Empty(t, fx.notifier.queued)
}

func TestCheckIn_OnLeaveDay(t *testing.T) {
	fx := newFixture(t, nil)
	_, err := fx.repo.CreateLeaveDay(context.Background(), userID, fx.now, attendance.StatusVacation)
	require.NoError(t, err)

	res, err := fx.svc.CheckIn(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, attendance.NoticeOnLeave, res.Notice)
}

func TestCheckOut(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	res, err := fx.svc.CheckOut(ctx, userID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Nil(t, res.Record)
	assert.Equal(t, attendance.NoticeNotCheckedIn, res.Notice)

	_, err = fx.svc.CheckIn(ctx, userID)
	require.NoError(t, err)

	fx.at("17:00:00")
	res, err = fx.svc.CheckOut(ctx, userID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	require.NotNil(t, res.Record.CheckOutTime)
	assert.Equal(t, 9*time.Hour, res.Record.WorkedDuration())

	fx.at("18:00:00")
	res, err = fx.svc.CheckOut(ctx, userID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, attendance.NoticeDayCompleted, res.Notice)
	assert.Equal(t, 17, res.Record.CheckOutTime.In(fx.svc.loc).Hour())
}

func TestLunchFlow(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	res, err := fx.svc.StartLunch(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, attendance.NoticeNotCheckedIn, res.Notice)

	_, err = fx.svc.CheckIn(ctx, userID)
	require.NoError(t, err)

	res, err = fx.svc.EndLunch(ctx, userID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, attendance.NoticeLunchNotStarted, res.Notice)

	fx.at("12:00:00")
	res, err = fx.svc.StartLunch(ctx, userID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, attendance.NoticeLunchStarted, res.Notice)

	res, err = fx.svc.StartLunch(ctx, userID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, attendance.NoticeLunchAlreadyStarted, res.Notice)

	fx.at("13:00:00")
	res, err = fx.svc.EndLunch(ctx, userID)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = fx.svc.EndLunch(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, attendance.NoticeLunchAlreadyFinished, res.Notice)

	fx.at("17:00:00")
	res, err = fx.svc.CheckOut(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, res.Record.WorkedDuration())

	res, err = fx.svc.StartLunch(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, attendance.NoticeDayCompleted, res.Notice)

	var types []notification.EventType
	for _, n := range fx.notifier.queued {
		types = append(types, n.Type)
	}
	assert.Equal(t, []notification.EventType{
		notification.TypeCheckIn,
		notification.TypeLunchStart,
		notification.TypeLunchEnd,
		notification.TypeCheckOut,
	}, types)
}

func TestMark_TogglesThroughTheDay(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	res, err := fx.svc.Mark(ctx, userID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Nil(t, res.Record.CheckOutTime)

	fx.at("17:00:00")
	res, err = fx.svc.Mark(ctx, userID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.NotNil(t, res.Record.CheckOutTime)

	res, err = fx.svc.Mark(ctx, userID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, attendance.NoticeDayCompleted, res.Notice)
}

func TestToday(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	resp, err := fx.svc.Today(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, attendance.DayNotCheckedIn, resp.DayStatus)
	assert.Equal(t, "08:05", resp.Deadline)
	assert.Equal(t, defaultScheduleName, resp.Schedule)
	assert.Nil(t, resp.Attendance)
	assert.Equal(t, []string{attendance.ActionCheckIn}, resp.Actions)

	_, err = fx.svc.CheckIn(ctx, userID)
	require.NoError(t, err)

	resp, err = fx.svc.Today(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayCheckedIn, resp.DayStatus)
	assert.Equal(t, []string{attendance.ActionLunchStart, attendance.ActionCheckOut}, resp.Actions)
	require.NotNil(t, resp.Attendance)
}

func TestGetMyAttendance_ScopesToUser(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	_, err := fx.svc.CheckIn(ctx, userID)
	require.NoError(t, err)
	other := "0198a2c4-7f00-7000-8000-00000000000b"
	_, err = fx.svc.CheckIn(ctx, other)
	require.NoError(t, err)

	resp, err := fx.svc.GetMyAttendance(ctx, userID, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.TotalCount)
	assert.Equal(t, userID, resp.Attendances[0].UserID)
}

func TestListAttendance_RejectsBadFilter(t *testing.T) {
	fx := newFixture(t, nil)
	bad := "tomorrow"

	_, err := fx.svc.ListAttendance(context.Background(), attendance.AttendanceFilter{StartDate: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestGetAttendance_InvalidID(t *testing.T) {
	fx := newFixture(t, nil)

	_, err := fx.svc.GetAttendance(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

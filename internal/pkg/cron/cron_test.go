package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	existing map[string]bool
	marked   map[string]string
	days     []time.Time
	failFor  map[string]error
}

func (f *fakeAttendanceRepo) CreateLeaveDay(_ context.Context, userID string, day time.Time, status string) (bool, error) {
	f.days = append(f.days, day)
	if err := f.failFor[userID]; err != nil {
		return false, err
	}
	if f.existing[userID] || f.marked[userID] != "" {
		return false, nil
	}
	f.marked[userID] = status
	return true, nil
}

type fakeLeaveRepo struct {
	leave.LeaveRequestRepository
	leaves  []leave.LeaveRequest
	gotFrom time.Time
}

func (f *fakeLeaveRepo) ListApprovedOverlapping(_ context.Context, from, _ time.Time, _ *string) ([]leave.LeaveRequest, error) {
	f.gotFrom = from
	return f.leaves, nil
}

func newJobs(t *testing.T) (*AttendanceJobs, *fakeAttendanceRepo, *fakeLeaveRepo) {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	att := &fakeAttendanceRepo{existing: map[string]bool{}, marked: map[string]string{}}
	lv := &fakeLeaveRepo{leaves: []leave.LeaveRequest{
		{ID: "r1", UserID: "u1", LeaveType: leave.TypeVacation},
		{ID: "r2", UserID: "u2", LeaveType: leave.TypeSick},
		{ID: "r3", UserID: "u3", LeaveType: leave.TypePersonal},
	}}
	return NewAttendanceJobs(att, lv, loc), att, lv
}

func TestMarkLeaveDays(t *testing.T) {
	jobs, att, lv := newJobs(t)
	att.existing["u3"] = true
	monday := time.Date(2025, 8, 18, 0, 0, 0, 0, jobs.loc)

	require.NoError(t, jobs.MarkLeaveDays(context.Background(), monday))

	assert.Equal(t, map[string]string{
		"u1": attendance.StatusVacation,
		"u2": attendance.StatusOnLeave,
	}, att.marked)
	assert.Equal(t, time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC), lv.gotFrom)
	for _, d := range att.days {
		assert.True(t, d.Equal(monday))
	}
}

func TestMarkLeaveDays_FailureIsRetriedNextTick(t *testing.T) {
	jobs, att, _ := newJobs(t)
	dbDown := errors.New("connection reset")
	att.failFor = map[string]error{"u2": dbDown}

	now := time.Date(2025, 8, 18, 9, 0, 0, 0, jobs.loc)
	job := OncePerDay(jobs.loc, func() time.Time { return now }, jobs.MarkLeaveDays)
	ctx := context.Background()

	err := job(ctx)
	require.ErrorIs(t, err, dbDown)
	assert.Equal(t, map[string]string{
		"u1": attendance.StatusVacation,
		"u3": attendance.StatusOnLeave,
	}, att.marked)

	delete(att.failFor, "u2")
	now = now.Add(time.Hour)
	require.NoError(t, job(ctx))
	assert.Equal(t, attendance.StatusOnLeave, att.marked["u2"])
	assert.Len(t, att.marked, 3)

	attempts := len(att.days)
	require.NoError(t, job(ctx))
	assert.Len(t, att.days, attempts)
}

func TestMarkLeaveDays_SkipsWeekend(t *testing.T) {
	jobs, att, _ := newJobs(t)
	saturday := time.Date(2025, 8, 23, 0, 0, 0, 0, jobs.loc)

	require.NoError(t, jobs.MarkLeaveDays(context.Background(), saturday))
	assert.Empty(t, att.marked)
}

func TestOncePerDay(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 8, 18, 9, 0, 0, 0, loc)
	calls := 0
	fail := errors.New("db down")
	var failNext bool

	job := OncePerDay(loc, func() time.Time { return now }, func(_ context.Context, day time.Time) error {
		calls++
		assert.Equal(t, 0, day.Hour())
		if failNext {
			failNext = false
			return fail
		}
		return nil
	})
	ctx := context.Background()

	require.NoError(t, job(ctx))
	require.NoError(t, job(ctx))
	assert.Equal(t, 1, calls)

	now = now.Add(24 * time.Hour)
	failNext = true
	assert.ErrorIs(t, job(ctx), fail)
	require.NoError(t, job(ctx))
	assert.Equal(t, 3, calls)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(context.Background())
	var order []string
	s.AddJob("a", time.Hour, func(context.Context) error { order = append(order, "a"); return nil })
	s.AddJob("b", time.Hour, func(context.Context) error { order = append(order, "b"); return errors.New("ignored") })

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(context.Background())
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

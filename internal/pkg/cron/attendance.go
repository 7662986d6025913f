package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, leaveRepo leave.LeaveRequestRepository, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_leave_days", time.Hour, OncePerDay(j.loc, j.now, j.MarkLeaveDays))
}

// MarkLeaveDays writes a leave-status record at local midnight of day for every user
// on approved leave that day who has no record yet. Weekends are skipped.
func (j *AttendanceJobs) MarkLeaveDays(ctx context.Context, day time.Time) error {
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return nil
	}

	// leave dates are civil dates
	civil := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	leaves, err := j.leaveRepo.ListApprovedOverlapping(ctx, civil, civil, nil)
	if err != nil {
		return fmt.Errorf("failed to list approved leave: %w", err)
	}

	marked := 0
	var errs []error
	for _, l := range leaves {
		status := attendance.StatusOnLeave
		if l.LeaveType == leave.TypeVacation {
			status = attendance.StatusVacation
		}
		created, err := j.attendanceRepo.CreateLeaveDay(ctx, l.UserID, day, status)
		if err != nil {
			slog.Error("failed to mark leave day", "user_id", l.UserID, "request_id", l.ID, "error", err)
			errs = append(errs, fmt.Errorf("mark leave day for user %s: %w", l.UserID, err))
			continue
		}
		if created {
			marked++
		}
	}

	slog.Info("leave days marked", "date", day.Format("2006-01-02"), "requests", len(leaves), "marked", marked, "failed", len(errs))
	// a failed day is retried on the next tick; CreateLeaveDay skips users already marked
	return errors.Join(errs...)
}

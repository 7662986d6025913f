package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

const defaultScheduleName = "Horario predeterminado"

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	scheduleRepo schedule.ScheduleRepository
	notifier     notification.Service
	defaultShift attendance.Shift
	loc          *time.Location
	now          func() time.Time
}

// NewAttendanceService evaluates every instant in loc; defaultShift applies to users without a schedule.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
	notifier notification.Service,
	defaultShift attendance.Shift,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		scheduleRepo:         scheduleRepo,
		notifier:             notifier,
		defaultShift:         defaultShift,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (s *AttendanceServiceImpl) clock() time.Time {
	return s.now().In(s.loc).Truncate(time.Second)
}

// today returns the current instant and local midnight of its day.
func (s *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := s.clock()
	y, m, d := now.Date()
	return now, time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

func (s *AttendanceServiceImpl) shiftFor(ctx context.Context, userID string) (attendance.Shift, *schedule.Schedule, error) {
	sched, err := s.scheduleRepo.GetByUserID(ctx, userID)
	if err != nil {
		return attendance.Shift{}, nil, fmt.Errorf("failed to get user schedule: %w", err)
	}
	return attendance.ShiftFor(sched, s.defaultShift), sched, nil
}

func noop(rec *attendance.Record, notice string) attendance.ActionResult {
	return attendance.ActionResult{Record: rec, Changed: false, Notice: notice}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.ActionResult, error) {
	now, day := s.today()

	existing, err := s.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.ActionResult{}, err
	}
	if existing != nil {
		if attendance.IsLeaveStatus(existing.Status) {
			return noop(existing, attendance.NoticeOnLeave), nil
		}
		return noop(existing, attendance.NoticeAlreadyCheckedIn), nil
	}

	shift, _, err := s.shiftFor(ctx, userID)
	if err != nil {
		return attendance.ActionResult{}, err
	}

	created, err := s.Create(ctx, attendance.Record{
		UserID:      userID,
		WorkDate:    day,
		CheckInTime: now,
		Status:      attendance.Evaluate(now, shift),
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			// lost the race against a concurrent check-in
			existing, getErr := s.GetByUserAndDate(ctx, userID, day)
			if getErr != nil {
				return attendance.ActionResult{}, getErr
			}
			return noop(existing, attendance.NoticeAlreadyCheckedIn), nil
		}
		return attendance.ActionResult{}, err
	}

	slog.Info("check-in recorded", "user_id", userID, "status", created.Status, "at", created.CheckInTime)
	s.publish(notification.TypeCheckIn, created, "marcó su entrada")
	return attendance.ActionResult{
		Record:  &created,
		Changed: true,
		Notice:  fmt.Sprintf("%s Estado: %s", attendance.NoticeCheckedIn, created.Status),
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.ActionResult, error) {
	now, day := s.today()

	rec, err := s.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.ActionResult{}, err
	}
	switch {
	case rec == nil:
		return noop(nil, attendance.NoticeNotCheckedIn), nil
	case attendance.IsLeaveStatus(rec.Status):
		return noop(rec, attendance.NoticeOnLeave), nil
	case rec.CheckOutTime != nil:
		return noop(rec, attendance.NoticeDayCompleted), nil
	}

	rec.CheckOutTime = &now
	updated, err := s.Update(ctx, *rec)
	if err != nil {
		return attendance.ActionResult{}, err
	}

	slog.Info("check-out recorded", "user_id", userID, "at", now)
	s.publish(notification.TypeCheckOut, updated, "marcó su salida")
	return attendance.ActionResult{Record: &updated, Changed: true, Notice: attendance.NoticeCheckedOut}, nil
}

// StartLunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartLunch(ctx context.Context, userID string) (attendance.ActionResult, error) {
	now, day := s.today()

	rec, err := s.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.ActionResult{}, err
	}
	switch {
	case rec == nil:
		return noop(nil, attendance.NoticeNotCheckedIn), nil
	case attendance.IsLeaveStatus(rec.Status):
		return noop(rec, attendance.NoticeOnLeave), nil
	case rec.CheckOutTime != nil:
		return noop(rec, attendance.NoticeDayCompleted), nil
	case rec.LunchStartTime != nil:
		return noop(rec, attendance.NoticeLunchAlreadyStarted), nil
	}

	rec.LunchStartTime = &now
	updated, err := s.Update(ctx, *rec)
	if err != nil {
		return attendance.ActionResult{}, err
	}

	s.publish(notification.TypeLunchStart, updated, "inició su almuerzo")
	return attendance.ActionResult{Record: &updated, Changed: true, Notice: attendance.NoticeLunchStarted}, nil
}

// EndLunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndLunch(ctx context.Context, userID string) (attendance.ActionResult, error) {
	now, day := s.today()

	rec, err := s.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.ActionResult{}, err
	}
	switch {
	case rec == nil:
		return noop(nil, attendance.NoticeNotCheckedIn), nil
	case attendance.IsLeaveStatus(rec.Status):
		return noop(rec, attendance.NoticeOnLeave), nil
	case rec.LunchStartTime == nil:
		return noop(rec, attendance.NoticeLunchNotStarted), nil
	case rec.LunchEndTime != nil:
		return noop(rec, attendance.NoticeLunchAlreadyFinished), nil
	case rec.CheckOutTime != nil:
		return noop(rec, attendance.NoticeDayCompleted), nil
	}

	rec.LunchEndTime = &now
	updated, err := s.Update(ctx, *rec)
	if err != nil {
		return attendance.ActionResult{}, err
	}

	s.publish(notification.TypeLunchEnd, updated, "terminó su almuerzo")
	return attendance.ActionResult{Record: &updated, Changed: true, Notice: attendance.NoticeLunchEnded}, nil
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, userID string) (attendance.ActionResult, error) {
	_, day := s.today()

	rec, err := s.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.ActionResult{}, err
	}
	switch {
	case rec == nil:
		return s.CheckIn(ctx, userID)
	case attendance.IsLeaveStatus(rec.Status):
		return noop(rec, attendance.NoticeOnLeave), nil
	case rec.CheckOutTime == nil:
		return s.CheckOut(ctx, userID)
	default:
		return noop(rec, attendance.NoticeDayCompleted), nil
	}
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	_, day := s.today()

	rec, err := s.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	shift, sched, err := s.shiftFor(ctx, userID)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	resp := attendance.TodayResponse{
		Date:      day.Format(validator.DateLayout),
		DayStatus: attendance.DayStatus(rec),
		Schedule:  defaultScheduleName,
		Deadline:  shift.Deadline(day).Format(validator.TimeOfDayLayout),
		Actions:   attendance.AvailableActions(rec),
	}
	if sched != nil {
		resp.Schedule = sched.Name
	}
	if rec != nil {
		a := attendance.NewAttendanceResponse(*rec, s.loc)
		resp.Attendance = &a
	}
	return resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, userID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.UserID = &userID
	return s.ListAttendance(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewAttendanceResponse(rec, s.loc))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  utils.TotalPages(total, filter.Limit),
		Showing:     utils.Showing(filter.Page, filter.Limit, total),
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(id) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(rec, s.loc), nil
}

func (s *AttendanceServiceImpl) publish(eventType notification.EventType, rec attendance.Record, action string) {
	if s.notifier == nil {
		return
	}
	name := rec.UserID
	if rec.FullName != nil {
		name = *rec.FullName
	}
	username := ""
	if rec.Username != nil {
		username = *rec.Username
	}
	s.notifier.Queue(notification.CreateNotificationRequest{
		Type:     eventType,
		UserID:   rec.UserID,
		Username: username,
		Message:  fmt.Sprintf("%s %s", name, action),
		Data: map[string]any{
			"attendance_id": rec.ID,
			"status":        rec.Status,
			"work_date":     rec.WorkDate.Format(validator.DateLayout),
		},
	})
}

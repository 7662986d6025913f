package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/utils"
)

// SeedResult counts what a seed run inserted.
type SeedResult struct {
	AdminID           string
	ScheduleID        string
	EmployeesCreated  int
	LeavesCreated     int
	AttendanceCreated int
}

// Seeder fills an empty database with demo data. Running it twice only adds what is missing.
type Seeder struct {
	tx             database.Transactor
	userRepo       user.UserRepository
	scheduleRepo   schedule.ScheduleRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	loc            *time.Location
	rng            *rand.Rand
	hash           func(string) (string, error)
}

func NewSeeder(
	tx database.Transactor,
	userRepo user.UserRepository,
	scheduleRepo schedule.ScheduleRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	loc *time.Location,
) *Seeder {
	return &Seeder{
		tx:             tx,
		userRepo:       userRepo,
		scheduleRepo:   scheduleRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		loc:            loc,
		rng:            rand.New(rand.NewPCG(2025, 8)),
		hash:           utils.HashPassword,
	}
}

func (s *Seeder) Run(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		admin, err := s.ensureAdmin(txCtx)
		if err != nil {
			return err
		}
		result.AdminID = admin.ID

		sched, err := s.ensureSchedule(txCtx)
		if err != nil {
			return err
		}
		result.ScheduleID = sched.ID

		employees, created, err := s.ensureEmployees(txCtx, sched.ID)
		if err != nil {
			return err
		}
		result.EmployeesCreated = created

		leaves, created, err := s.ensureLeaves(txCtx, employees, admin.ID)
		if err != nil {
			return err
		}
		result.LeavesCreated = created

		result.AttendanceCreated, err = s.seedAttendance(txCtx, employees, leaves, attendance.ShiftFor(&sched, attendance.DefaultShift))
		return err
	})
	if err != nil {
		return SeedResult{}, err
	}

	slog.Info("database seeded",
		"employees_created", result.EmployeesCreated,
		"leaves_created", result.LeavesCreated,
		"attendance_created", result.AttendanceCreated,
	)
	return result, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) (user.User, error) {
	existing, err := s.userRepo.GetByLogin(ctx, AdminUsername)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := s.hash(AdminPassword)
	if err != nil {
		return user.User{}, fmt.Errorf("hash admin password: %w", err)
	}
	admin, err := s.userRepo.Create(ctx, user.User{
		Username:     AdminUsername,
		Email:        AdminEmail,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		FirstName:    strPtr("Admin"),
		LastName:     strPtr("User"),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

func (s *Seeder) ensureSchedule(ctx context.Context) (schedule.Schedule, error) {
	schedules, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("list schedules: %w", err)
	}
	for _, sc := range schedules {
		if sc.Name == DefaultScheduleName {
			return sc, nil
		}
	}

	sc, err := s.scheduleRepo.Create(ctx, schedule.Schedule{
		Name:               DefaultScheduleName,
		StartTime:          schedule.MustParseTimeOfDay(defaultScheduleStart),
		EndTime:            schedule.MustParseTimeOfDay(defaultScheduleEnd),
		GracePeriodMinutes: defaultScheduleGrace,
	})
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("create schedule: %w", err)
	}
	return sc, nil
}

// ensureEmployees returns the seeded employees in defaultEmployees order and how many were new.
func (s *Seeder) ensureEmployees(ctx context.Context, scheduleID string) ([]user.User, int, error) {
	hash, err := s.hash(EmployeePassword)
	if err != nil {
		return nil, 0, fmt.Errorf("hash employee password: %w", err)
	}

	employees := make([]user.User, 0, len(defaultEmployees))
	created := 0
	for _, e := range defaultEmployees {
		existing, err := s.userRepo.GetByLogin(ctx, e.Username)
		if err == nil {
			employees = append(employees, existing)
			continue
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return nil, 0, fmt.Errorf("lookup employee %s: %w", e.Username, err)
		}

		birth := e.BirthDate
		u, err := s.userRepo.Create(ctx, user.User{
			Username:     e.Username,
			Email:        e.Email,
			PasswordHash: hash,
			Role:         user.RoleEmployee,
			FirstName:    strPtr(e.FirstName),
			LastName:     strPtr(e.LastName),
			BirthDate:    &birth,
			PhoneNumber:  strPtr(e.PhoneNumber),
			Area:         strPtr(e.Area),
			Department:   strPtr(e.Department),
			ScheduleID:   &scheduleID,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("create employee %s: %w", e.Username, err)
		}
		employees = append(employees, u)
		created++
	}
	return employees, created, nil
}

// ensureLeaves returns every approved request of the seeded employees, creating the defaults they lack.
func (s *Seeder) ensureLeaves(ctx context.Context, employees []user.User, reviewerID string) ([]leave.LeaveRequest, int, error) {
	var all []leave.LeaveRequest
	created := 0
	for _, l := range defaultLeaves {
		emp := employees[l.EmployeeIndex]
		existing, err := s.leaveRepo.ListApprovedOverlapping(ctx, l.StartDate, l.EndDate, &emp.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("list leaves of %s: %w", emp.Username, err)
		}
		if len(existing) > 0 {
			all = append(all, existing...)
			continue
		}

		req, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
			UserID:    emp.ID,
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
			LeaveType: l.LeaveType,
			Reason:    strPtr(l.Reason),
			Status:    leave.StatusPending,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("create leave of %s: %w", emp.Username, err)
		}
		req, err = s.leaveRepo.UpdateStatus(ctx, req.ID, leave.StatusApproved, reviewerID, time.Now())
		if err != nil {
			return nil, 0, fmt.Errorf("approve leave of %s: %w", emp.Username, err)
		}
		all = append(all, req)
		created++
	}
	return all, created, nil
}

func (s *Seeder) seedAttendance(ctx context.Context, employees []user.User, leaves []leave.LeaveRequest, shift attendance.Shift) (int, error) {
	created := 0
	for day := AttendanceFrom; !day.After(AttendanceTo); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		local := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)

		for _, emp := range employees {
			if onLeave(leaves, emp.ID, day) {
				ok, err := s.attendanceRepo.CreateLeaveDay(ctx, emp.ID, local, attendance.StatusVacation)
				if err != nil {
					return 0, err
				}
				if ok {
					created++
				}
				continue
			}

			_, err := s.attendanceRepo.Create(ctx, s.workedDay(emp.ID, local, shift))
			switch {
			case errors.Is(err, attendance.ErrAlreadyCheckedIn):
			case err != nil:
				return 0, err
			default:
				created++
			}
		}
	}
	return created, nil
}

// workedDay draws a check-in between 07:50 and 08:10, lunch starting 12:00 to 15:00
// lasting 30 to 60 minutes, and a check-out between 18:00 and 18:20.
func (s *Seeder) workedDay(userID string, day time.Time, shift attendance.Shift) attendance.Record {
	at := func(hour, minMinutes, maxMinutes int) time.Time {
		offset := time.Duration(minMinutes)*time.Minute + time.Duration(s.rng.Int64N(int64(maxMinutes-minMinutes)*60+1))*time.Second
		return day.Add(time.Duration(hour)*time.Hour + offset)
	}

	checkIn := at(8, -10, 10)
	lunchStart := at(13, -60, 120)
	lunchEnd := lunchStart.Add(time.Duration(30+s.rng.IntN(31)) * time.Minute)
	checkOut := at(18, 0, 20)

	return attendance.Record{
		UserID:         userID,
		WorkDate:       day,
		CheckInTime:    checkIn,
		CheckOutTime:   &checkOut,
		LunchStartTime: &lunchStart,
		LunchEndTime:   &lunchEnd,
		Status:         attendance.Evaluate(checkIn, shift),
	}
}

func onLeave(leaves []leave.LeaveRequest, userID string, day time.Time) bool {
	for _, l := range leaves {
		if l.UserID == userID && l.Covers(day) {
			return true
		}
	}
	return false
}

package schedule

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

type scheduleServiceImpl struct {
	tx           database.Transactor
	scheduleRepo schedule.ScheduleRepository
}

func NewScheduleService(tx database.Transactor, scheduleRepo schedule.ScheduleRepository) schedule.ScheduleService {
	return &scheduleServiceImpl{tx: tx, scheduleRepo: scheduleRepo}
}

// Create implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	created, err := s.scheduleRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	slog.Info("schedule created", "schedule_id", created.ID, "name", created.Name)
	return schedule.NewScheduleResponse(created), nil
}

// Get implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Get(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	if !validator.IsValidUUID(id) {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
	}
	found, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return schedule.NewScheduleResponse(found), nil
}

// List implements schedule.ScheduleService.
func (s *scheduleServiceImpl) List(ctx context.Context) ([]schedule.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sc := range schedules {
		responses = append(responses, schedule.NewScheduleResponse(sc))
	}
	return responses, nil
}

// Update implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Update(ctx context.Context, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	updated, err := s.scheduleRepo.Update(ctx, req.ToEntity())
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	slog.Info("schedule updated", "schedule_id", updated.ID)
	return schedule.NewScheduleResponse(updated), nil
}

// Delete implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return schedule.ErrScheduleNotFound
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		count, err := s.scheduleRepo.CountAssignedUsers(txCtx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return schedule.ErrScheduleInUse
		}
		return s.scheduleRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("schedule deleted", "schedule_id", id)
	return nil
}

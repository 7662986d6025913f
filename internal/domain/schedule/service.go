package schedule

import "context"

type ScheduleService interface {
	Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	Get(ctx context.Context, id string) (ScheduleResponse, error)
	List(ctx context.Context) ([]ScheduleResponse, error)
	Update(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)

	// Delete refuses with ErrScheduleInUse while any user references the schedule.
	Delete(ctx context.Context, id string) error
}

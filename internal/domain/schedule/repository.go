package schedule

import "context"

type ScheduleRepository interface {
	Create(ctx context.Context, schedule Schedule) (Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, error)

	// GetByUserID returns the schedule assigned to a user, or nil when none is assigned.
	GetByUserID(ctx context.Context, userID string) (*Schedule, error)

	// List returns every schedule ordered by name, with the number of assigned users.
	List(ctx context.Context) ([]Schedule, error)
	Update(ctx context.Context, schedule Schedule) (Schedule, error)
	Delete(ctx context.Context, id string) error
	CountAssignedUsers(ctx context.Context, id string) (int, error)
}

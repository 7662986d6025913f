package user

import "context"

// UserService is the administrator's user management.
type UserService interface {
	List(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	AssignSchedule(ctx context.Context, req AssignScheduleRequest) (UserResponse, error)

	// Delete refuses with ErrCannotDeleteSelf when actorID equals id.
	Delete(ctx context.Context, actorID string, id string) error
}

package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByLogin matches either the username or the email, case-insensitively.
	GetByLogin(ctx context.Context, login string) (User, error)

	// ExistsByUsername and ExistsByEmail ignore the user with excludeID, so edits can keep their own values.
	ExistsByUsername(ctx context.Context, username string, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)

	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
	Update(ctx context.Context, user User) (User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	AssignSchedule(ctx context.Context, id string, scheduleID *string) error
	Delete(ctx context.Context, id string) error
}

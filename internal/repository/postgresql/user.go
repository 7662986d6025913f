package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/utils"
)

const userColumns = `
	u.id, u.username, u.email, u.password_hash, u.role,
	u.first_name, u.last_name, u.birth_date, u.phone_number, u.area, u.department,
	u.schedule_id, s.name, u.created_at, u.updated_at`

const userFrom = `FROM users u LEFT JOIN schedules s ON s.id = u.schedule_id`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.FirstName,
		&u.LastName,
		&u.BirthDate,
		&u.PhoneNumber,
		&u.Area,
		&u.Department,
		&u.ScheduleID,
		&u.ScheduleName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// mapUserWriteError translates constraint violations of users writes.
func mapUserWriteError(err error) error {
	code, constraint := pgErrorCode(err)
	switch {
	case code == pgUniqueViolation && constraint == "users_username_key":
		return user.ErrUsernameExists
	case code == pgUniqueViolation && constraint == "users_email_key":
		return user.ErrUserEmailExists
	case code == pgForeignKeyViolation:
		return schedule.ErrScheduleNotFound
	}
	return err
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` ` + userFrom + ` WHERE ` + where

	u, err := scanUser(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	query := `
		INSERT INTO users (
			id, username, email, password_hash, role,
			first_name, last_name, birth_date, phone_number, area, department, schedule_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = q.Exec(ctx, query,
		id.String(),
		newUser.Username,
		strings.ToLower(newUser.Email),
		newUser.PasswordHash,
		newUser.Role,
		newUser.FirstName,
		newUser.LastName,
		newUser.BirthDate,
		newUser.PhoneNumber,
		newUser.Area,
		newUser.Department,
		newUser.ScheduleID,
	)
	if err != nil {
		return user.User{}, mapUserWriteError(err)
	}

	return r.GetByID(ctx, id.String())
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, `u.id = $1`, id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `LOWER(u.email) = LOWER($1)`, email)
}

// GetByLogin implements user.UserRepository.
func (r *userRepositoryImpl) GetByLogin(ctx context.Context, login string) (user.User, error) {
	return r.getOne(ctx, `LOWER(u.username) = LOWER($1) OR LOWER(u.email) = LOWER($1)`, login)
}

// ExistsByUsername implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByUsername(ctx context.Context, username string, excludeID string) (bool, error) {
	return r.exists(ctx, `LOWER(username) = LOWER($1)`, username, excludeID)
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	return r.exists(ctx, `LOWER(email) = LOWER($1)`, email, excludeID)
}

func (r *userRepositoryImpl) exists(ctx context.Context, where string, value string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE ` + where + ` AND ($2 = '' OR id::text <> $2))`
	var exists bool
	if err := q.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []any
	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		p := addArg("%" + strings.TrimSpace(*filter.Search) + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(u.username ILIKE %[1]s OR u.email ILIKE %[1]s OR u.first_name ILIKE %[1]s OR u.last_name ILIKE %[1]s)", p))
	}
	if filter.Role != nil && *filter.Role != "" {
		conditions = append(conditions, "u.role = "+addArg(*filter.Role))
	}
	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, "u.department ILIKE "+addArg(*filter.Department))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) `+userFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` ` + userFrom + where +
		` ORDER BY LOWER(u.username) LIMIT ` + addArg(filter.Limit) + ` OFFSET ` + addArg(utils.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0, filter.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	return users, total, nil
}

// Update implements user.UserRepository. An empty PasswordHash keeps the stored one.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET username = $1, email = $2, role = $3,
			first_name = $4, last_name = $5, birth_date = $6, phone_number = $7,
			area = $8, department = $9,
			password_hash = COALESCE(NULLIF($10, ''), password_hash),
			updated_at = NOW()
		WHERE id = $11
	`
	tag, err := q.Exec(ctx, query,
		u.Username,
		strings.ToLower(u.Email),
		u.Role,
		u.FirstName,
		u.LastName,
		u.BirthDate,
		u.PhoneNumber,
		u.Area,
		u.Department,
		u.PasswordHash,
		u.ID,
	)
	if err != nil {
		return user.User{}, mapUserWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return user.User{}, user.ErrUserNotFound
	}

	return r.GetByID(ctx, u.ID)
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// AssignSchedule implements user.UserRepository.
func (r *userRepositoryImpl) AssignSchedule(ctx context.Context, id string, scheduleID *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET schedule_id = $1, updated_at = NOW() WHERE id = $2`, scheduleID, id)
	if err != nil {
		return fmt.Errorf("assign schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

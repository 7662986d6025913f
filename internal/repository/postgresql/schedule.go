package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
)

// TIME columns travel as text and are parsed by schedule.ParseTimeOfDay.
const scheduleColumns = `
	s.id, s.name, s.start_time::text, s.end_time::text, s.grace_period_minutes, s.created_at, s.updated_at,
	(SELECT COUNT(*) FROM users u WHERE u.schedule_id = s.id)`

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

func scanSchedule(row rowScanner) (schedule.Schedule, error) {
	var (
		s          schedule.Schedule
		start, end string
	)
	if err := row.Scan(&s.ID, &s.Name, &start, &end, &s.GracePeriodMinutes, &s.CreatedAt, &s.UpdatedAt, &s.AssignedUsers); err != nil {
		return schedule.Schedule{}, err
	}

	var err error
	if s.StartTime, err = schedule.ParseTimeOfDay(start); err != nil {
		return schedule.Schedule{}, err
	}
	if s.EndTime, err = schedule.ParseTimeOfDay(end); err != nil {
		return schedule.Schedule{}, err
	}
	return s, nil
}

func mapScheduleWriteError(err error) error {
	if isUniqueViolation(err) {
		return schedule.ErrScheduleNameExists
	}
	if isForeignKeyViolation(err) {
		return schedule.ErrScheduleInUse
	}
	return err
}

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("generate schedule id: %w", err)
	}

	query := `
		INSERT INTO schedules (id, name, start_time, end_time, grace_period_minutes)
		VALUES ($1, $2, $3::time, $4::time, $5)
	`
	if _, err := q.Exec(ctx, query, id.String(), s.Name, s.StartTime.String(), s.EndTime.String(), s.GracePeriodMinutes); err != nil {
		return schedule.Schedule{}, mapScheduleWriteError(err)
	}
	return r.GetByID(ctx, id.String())
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSchedule(q.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM schedules s WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("get schedule: %w", err)
	}
	return s, nil
}

// GetByUserID implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleColumns + ` FROM schedules s JOIN users owner ON owner.schedule_id = s.id WHERE owner.id = $1`
	s, err := scanSchedule(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by user: %w", err)
	}
	return &s, nil
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) List(ctx context.Context) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+scheduleColumns+` FROM schedules s ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	schedules := make([]schedule.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Update(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET name = $1, start_time = $2::time, end_time = $3::time, grace_period_minutes = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, s.Name, s.StartTime.String(), s.EndTime.String(), s.GracePeriodMinutes, s.ID)
	if err != nil {
		return schedule.Schedule{}, mapScheduleWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	return r.GetByID(ctx, s.ID)
}

// Delete implements schedule.ScheduleRepository. Users still referencing the schedule block the delete.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return mapScheduleWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

// CountAssignedUsers implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) CountAssignedUsers(ctx context.Context, id string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE schedule_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count assigned users: %w", err)
	}
	return count, nil
}

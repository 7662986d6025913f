package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

const attendanceColumns = `
	a.id, a.user_id, a.work_date, a.check_in_time, a.check_out_time,
	a.lunch_start_time, a.lunch_end_time, a.status, a.created_at, a.updated_at,
	u.username, ` + fullNameExpr

const fullNameExpr = `COALESCE(NULLIF(TRIM(CONCAT_WS(' ', u.first_name, u.last_name)), ''), u.username)`

const attendanceFrom = `FROM attendance_records a JOIN users u ON u.id = a.user_id`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row rowScanner) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.WorkDate, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.LunchStartTime, &rec.LunchEndTime, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.Username, &rec.FullName,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendance_records (
			id, user_id, work_date, check_in_time, check_out_time, lunch_start_time, lunch_end_time, status
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8)
	`
	_, err = q.Exec(ctx, query,
		id.String(),
		rec.UserID,
		rec.WorkDate.Format(validator.DateLayout),
		rec.CheckInTime,
		rec.CheckOutTime,
		rec.LunchStartTime,
		rec.LunchEndTime,
		rec.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a.GetByID(ctx, id.String())
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rec, err := scanAttendance(q.QueryRow(ctx, `SELECT `+attendanceColumns+` `+attendanceFrom+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` ` + attendanceFrom + ` WHERE a.user_id = $1 AND a.work_date = $2::date`
	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, workDate.Format(validator.DateLayout)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for day: %w", err)
	}
	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_out_time = $1, lunch_start_time = $2, lunch_end_time = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, rec.CheckOutTime, rec.LunchStartTime, rec.LunchEndTime, rec.Status, rec.ID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return a.GetByID(ctx, rec.ID)
}

// List implements attendance.AttendanceRepository. Newest check-in first.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []any
	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != nil && *filter.UserID != "" {
		conditions = append(conditions, "a.user_id = "+addArg(*filter.UserID))
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, "a.status = "+addArg(*filter.Status))
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, "a.work_date >= "+addArg(*filter.StartDate)+"::date")
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, "a.work_date <= "+addArg(*filter.EndDate)+"::date")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) `+attendanceFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `SELECT ` + attendanceColumns + ` ` + attendanceFrom + where +
		` ORDER BY a.check_in_time DESC LIMIT ` + addArg(filter.Limit) + ` OFFSET ` + addArg(utils.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0, filter.Limit)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// CreateLeaveDay implements attendance.AttendanceRepository.
// The record is stamped at workDate itself, which callers pass as local midnight.
func (a *attendanceRepository) CreateLeaveDay(ctx context.Context, userID string, workDate time.Time, status string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendance_records (id, user_id, work_date, check_in_time, status)
		VALUES ($1, $2, $3::date, $4, $5)
		ON CONFLICT (user_id, work_date) DO NOTHING
	`
	tag, err := q.Exec(ctx, query, id.String(), userID, workDate.Format(validator.DateLayout), workDate, status)
	if err != nil {
		return false, fmt.Errorf("failed to create leave day: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

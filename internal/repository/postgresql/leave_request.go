package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.start_date, lr.end_date, lr.leave_type, lr.reason, lr.status,
	lr.request_date, lr.reviewed_by, lr.reviewed_at, u.username, ` + fullNameExpr

const leaveRequestFrom = `FROM leave_requests lr JOIN users u ON u.id = lr.user_id`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row rowScanner) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.UserID, &lr.StartDate, &lr.EndDate, &lr.LeaveType, &lr.Reason, &lr.Status,
		&lr.RequestDate, &lr.ReviewedBy, &lr.ReviewedAt, &lr.Username, &lr.FullName,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("generate leave request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (id, user_id, start_date, end_date, leave_type, reason, status)
		VALUES ($1, $2, $3::date, $4::date, $5, $6, $7)
	`
	_, err = q.Exec(ctx, query,
		id.String(),
		req.UserID,
		req.StartDate.Format(validator.DateLayout),
		req.EndDate.Format(validator.DateLayout),
		req.LeaveType,
		req.Reason,
		req.Status,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, id.String())
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, `SELECT `+leaveRequestColumns+` `+leaveRequestFrom+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository. Date bounds select requests overlapping the range.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []any
	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != nil && *filter.UserID != "" {
		conditions = append(conditions, "lr.user_id = "+addArg(*filter.UserID))
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, "lr.status = "+addArg(*filter.Status))
	}
	if filter.LeaveType != nil && *filter.LeaveType != "" {
		conditions = append(conditions, "lr.leave_type = "+addArg(*filter.LeaveType))
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, "lr.end_date >= "+addArg(*filter.StartDate)+"::date")
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, "lr.start_date <= "+addArg(*filter.EndDate)+"::date")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) `+leaveRequestFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `SELECT ` + leaveRequestColumns + ` ` + leaveRequestFrom + where +
		` ORDER BY lr.request_date DESC LIMIT ` + addArg(filter.Limit) + ` OFFSET ` + addArg(utils.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0, filter.Limit)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`
	tag, err := q.Exec(ctx, query, status, reviewedBy, reviewedAt, id, leave.StatusPending)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// either missing or no longer pending
		if _, err := r.GetByID(ctx, id); err != nil {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	return r.GetByID(ctx, id)
}

// ListApprovedOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedOverlapping(ctx context.Context, from, to time.Time, userID *string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` ` + leaveRequestFrom + `
		WHERE lr.status = $1 AND lr.start_date <= $3::date AND lr.end_date >= $2::date
		  AND ($4::uuid IS NULL OR lr.user_id = $4::uuid)
		ORDER BY lr.user_id, lr.start_date`

	rows, err := q.Query(ctx, query, leave.StatusApproved, from.Format(validator.DateLayout), to.Format(validator.DateLayout), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

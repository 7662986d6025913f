package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db     *database.DB
	leaves leave.LeaveRequestRepository
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db, leaves: NewLeaveRequestRepository(db)}
}

// ListAttendanceInWindow implements report.ReportRepository.
func (r *reportRepositoryImpl) ListAttendanceInWindow(ctx context.Context, from, to time.Time, userID *string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` ` + attendanceFrom + `
		WHERE a.check_in_time >= $1 AND a.check_in_time < $2
		  AND ($3::uuid IS NULL OR a.user_id = $3::uuid)
		ORDER BY a.user_id, a.check_in_time`

	rows, err := q.Query(ctx, query, from, to, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query report attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListApprovedLeavesInWindow implements report.ReportRepository.
func (r *reportRepositoryImpl) ListApprovedLeavesInWindow(ctx context.Context, firstDay, lastDay time.Time, userID *string) ([]leave.LeaveRequest, error) {
	return r.leaves.ListApprovedOverlapping(ctx, firstDay, lastDay, userID)
}

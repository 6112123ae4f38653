package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workpulse/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// HasApprovedLeaveOn implements leave.LeaveRepository. A leave covers the
// date when the date falls inside its inclusive [start_date, end_date] span.
func (r *leaveRepository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND company_id = $2
			  AND status = $3
			  AND start_date <= $4
			  AND end_date >= $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, companyID, leave.StatusApproved, day).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}

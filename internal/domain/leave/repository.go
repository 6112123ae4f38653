package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// HasApprovedLeaveOn reports whether an approved leave request covers the
	// given calendar date.
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error)
}

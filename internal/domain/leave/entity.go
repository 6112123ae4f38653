package leave

import "time"

// LeaveRequest is the slice of the leave collaborator this core reads:
// whether an approved request covers a date. The request workflow itself is
// owned elsewhere.
type LeaveRequest struct {
	ID         string
	CompanyID  string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Status     string
}

const StatusApproved = "approved"

package attendance

import (
	"context"
	"time"
)

// ClockEventRepository defines data access for the raw event stream.
// All methods include companyID to prevent cross-company access.
type ClockEventRepository interface {
	// Create persists an event.
	Create(ctx context.Context, event ClockEvent) (ClockEvent, error)

	// GetOpenIn returns the employee's most recent IN event that no OUT has
	// paired with yet, or nil when the employee is not clocked in.
	GetOpenIn(ctx context.Context, employeeID string, companyID string) (*ClockEvent, error)

	// GetOutEventsInWindow returns OUT events with positive worked hours
	// whose timestamps fall inside [start, end), ordered by timestamp.
	GetOutEventsInWindow(ctx context.Context, companyID string, start, end time.Time) ([]ClockEvent, error)

	// GetPrecedingIn returns the employee's most recent IN event strictly
	// before the given instant, looking back at most into the previous
	// calendar day, or nil. The lookback covers shifts that span midnight.
	GetPrecedingIn(ctx context.Context, employeeID string, before time.Time, companyID string) (*ClockEvent, error)
}

package attendance

import "context"

// ClockService is the minimal ingest pipeline feeding the engine: it
// persists IN/OUT events and fires the real-time recorder after every OUT.
type ClockService interface {
	ClockIn(ctx context.Context, companyID string, employeeID string) (ClockInResponse, error)
	ClockOut(ctx context.Context, companyID string, employeeID string) (ClockOutResponse, error)
}

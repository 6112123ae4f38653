package supplementary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines data access for supplementary day records.
// All methods take companyID to prevent cross-company data access.
type Repository interface {
	// Create inserts a new record. The storage layer carries a unique index
	// on (company_id, employee_id, date) as the ultimate race-breaker; a
	// violation surfaces as ErrDuplicateForDate.
	Create(ctx context.Context, record SupplementaryDay) (SupplementaryDay, error)

	// GetByID retrieves a record by ID with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (SupplementaryDay, error)

	// GetByEmployeeAndDate retrieves the record keyed to one reference date,
	// using full-day bounds on the date column. Returns nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*SupplementaryDay, error)

	// Update persists state-machine mutations.
	Update(ctx context.Context, record SupplementaryDay) error

	// Delete removes a record. The service only permits this while pending.
	Delete(ctx context.Context, id string, companyID string) error

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter Filter, companyID string) ([]SupplementaryDay, int64, error)

	// GetApprovedUnconverted returns an employee's approved records that have
	// not been converted to recovery, oldest first.
	GetApprovedUnconverted(ctx context.Context, employeeID string, companyID string) ([]SupplementaryDay, error)

	// MarkConverted flips the given records to recovered and links them to a
	// recovery day entry. Runs inside the caller's transaction.
	MarkConverted(ctx context.Context, ids []string, recoveryDayID string, companyID string) error

	// StatusCounts returns record counts grouped by status.
	StatusCounts(ctx context.Context, companyID string) (map[string]int64, error)

	// TypeCounts returns record counts grouped by day type.
	TypeCounts(ctx context.Context, companyID string) (map[string]int64, error)

	// TotalApprovedHours sums effective hours across approved and recovered
	// records.
	TotalApprovedHours(ctx context.Context, companyID string) (decimal.Decimal, error)
}

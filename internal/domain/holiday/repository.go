package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// GetByDate returns the holiday matching a calendar day (day-bounded
	// range lookup), or nil when the date is not a holiday.
	GetByDate(ctx context.Context, companyID string, date time.Time) (*Holiday, error)

	// GetByDateRange returns holidays falling inside [startDate, endDate].
	GetByDateRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]Holiday, error)
}

package company

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds the per-tenant knobs the supplementary-day engine reads.
// Company CRUD is external; this core never writes these.
type Settings struct {
	CompanyID string

	// SupplementaryMinMinutes is the minimum worked time, in minutes, for a
	// weekend/holiday check-out to produce a supplementary day.
	SupplementaryMinMinutes int

	// DailyWorkingHours expresses one compensatory day in worked hours.
	DailyWorkingHours decimal.Decimal

	// RecoveryConversionRate scales approved hours into recovery days.
	RecoveryConversionRate decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinimumHours converts the configured minute threshold to hours.
func (s Settings) MinimumHours() decimal.Decimal {
	return decimal.NewFromInt(int64(s.SupplementaryMinMinutes)).Div(decimal.NewFromInt(60))
}

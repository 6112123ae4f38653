package recovery

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecoveryDay is a compensatory-leave ledger entry produced when approved
// supplementary hours are converted. The recovery-days system consuming
// these entries is an external collaborator.
type RecoveryDay struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Days       decimal.Decimal
	Hours      decimal.Decimal
	SourceType string
	Notes      *string
	CreatedBy  string
	CreatedAt  time.Time
}

const SourceSupplementaryConversion = "supplementary_conversion"

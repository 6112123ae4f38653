package supplementary

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayType classifies why a calendar day counts as supplementary.
type DayType string

const (
	TypeWeekendSaturday DayType = "WEEKEND_SATURDAY"
	TypeWeekendSunday   DayType = "WEEKEND_SUNDAY"
	TypeHoliday         DayType = "HOLIDAY"
)

// Status is the approval lifecycle state of a supplementary day record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusRecovered Status = "recovered"
)

// Source records which path created the record.
type Source string

const (
	SourceAutoDetected Source = "auto_detected"
	SourceManual       Source = "manual"
)

// SupplementaryDay is one employee's worked weekend/holiday day.
// At most one record exists per (company, employee, date); the date is the
// reference date resolved by the night-shift rule, not the raw event date.
type SupplementaryDay struct {
	ID                  string
	CompanyID           string
	EmployeeID          string
	AttendanceEventID   *string
	Date                time.Time
	Type                DayType
	Hours               decimal.Decimal
	Source              Source
	Status              Status
	CheckIn             *time.Time
	CheckOut            *time.Time
	ApprovedHours       *decimal.Decimal
	ApprovedBy          *string
	ApprovedAt          *time.Time
	RejectionReason     *string
	Notes               *string
	ConvertedToRecovery bool
	RecoveryDayID       *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO
	EmployeeName *string
}

// EffectiveHours returns the hours that count toward conversion:
// the approver's override when present, the declared hours otherwise.
func (s SupplementaryDay) EffectiveHours() decimal.Decimal {
	if s.ApprovedHours != nil {
		return *s.ApprovedHours
	}
	return s.Hours
}

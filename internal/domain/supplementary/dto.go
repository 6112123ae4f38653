package supplementary

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workpulse/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// DETECTION
// ========================================

// CheckOutEvent carries everything the real-time recorder needs about a
// just-persisted OUT event. The attendance pipeline builds one synchronously
// after every clock-out.
type CheckOutEvent struct {
	CompanyID         string
	EmployeeID        string
	AttendanceEventID string
	Date              time.Time
	CheckIn           time.Time
	CheckOut          time.Time
	HoursWorked       decimal.Decimal
}

// SkipReason explains why a check-out did not produce a record.
type SkipReason string

const (
	ReasonNotSupplementaryDay SkipReason = "not a supplementary day"
	ReasonEmployeeNotFound    SkipReason = "employee not found"
	ReasonNotEligible         SkipReason = "not eligible"
	ReasonAlreadyExists       SkipReason = "already exists"
	ReasonOnLeave             SkipReason = "employee on leave"
	ReasonInsufficientHours   SkipReason = "insufficient hours"
	ReasonInternalError       SkipReason = "internal error"
)

// DetectionResult is the outcome of a single detection attempt. Expected
// non-creation outcomes are data, not errors, so the attendance write path
// is never blocked by the recorder.
type DetectionResult struct {
	Created bool              `json:"created"`
	Reason  SkipReason        `json:"reason,omitempty"`
	Detail  string            `json:"detail,omitempty"`
	Record  *SupplementaryDay `json:"-"`
}

// ReconcileResult tallies one tenant's sweep over a date range.
type ReconcileResult struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// ========================================
// MANAGEMENT REQUESTS
// ========================================

type CreateRequest struct {
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"` // YYYY-MM-DD
	Hours      decimal.Decimal `json:"hours"`
	CheckIn    *string         `json:"check_in,omitempty"`  // 2006-01-02 15:04:05
	CheckOut   *string         `json:"check_out,omitempty"` // 2006-01-02 15:04:05
	Notes      *string         `json:"notes,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !r.Hours.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveRequest struct {
	ID            string           `json:"id"`
	ApprovedHours *decimal.Decimal `json:"approved_hours,omitempty"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.ApprovedHours != nil && !r.ApprovedHours.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "approved_hours",
			Message: "approved_hours must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequest struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RevokeRequest resets an approved or rejected record back to pending.
type RevokeRequest struct {
	ID     string  `json:"id"`
	Reason *string `json:"reason,omitempty"`
}

type ConvertRequest struct {
	EmployeeID string          `json:"employee_id"`
	RecordIDs  []string        `json:"record_ids"`
	Days       decimal.Decimal `json:"days"`
	Notes      *string         `json:"notes,omitempty"`
}

func (r *ConvertRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReconcileRequest is the admin backfill trigger for one tenant.
type ReconcileRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *ReconcileRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// FILTER
// ========================================

// Filter enumerates every recognized list filter. Unknown query fields are
// ignored at the handler; there is no loose map-typed filtering.
type Filter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Type       *string `json:"type,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	BranchID   *string `json:"branch_id,omitempty"`
	PositionID *string `json:"position_id,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, hours, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusRecovered),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}

	if f.Type != nil && !validator.IsInSlice(*f.Type, []string{
		string(TypeWeekendSaturday), string(TypeWeekendSunday), string(TypeHoliday),
	}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "invalid type"})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}

	if f.SortBy == "" {
		f.SortBy = "date"
	}
	if !validator.IsInSlice(f.SortBy, []string{"date", "employee_name", "hours", "status", "created_at"}) {
		errs = append(errs, validator.ValidationError{Field: "sort_by", Message: "invalid sort field"})
	}

	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "sort_order must be asc or desc"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type SupplementaryDayResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	EmployeeName        string  `json:"employee_name,omitempty"`
	Date                string  `json:"date"`
	Type                string  `json:"type"`
	Hours               string  `json:"hours"`
	Source              string  `json:"source"`
	Status              string  `json:"status"`
	CheckIn             *string `json:"check_in,omitempty"`
	CheckOut            *string `json:"check_out,omitempty"`
	ApprovedHours       *string `json:"approved_hours,omitempty"`
	ApprovedBy          *string `json:"approved_by,omitempty"`
	ApprovedAt          *string `json:"approved_at,omitempty"`
	RejectionReason     *string `json:"rejection_reason,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	ConvertedToRecovery bool    `json:"converted_to_recovery"`
	RecoveryDayID       *string `json:"recovery_day_id,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type ListResponse struct {
	TotalCount int64                      `json:"total_count"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalPages int                        `json:"total_pages"`
	Showing    string                     `json:"showing"`
	Records    []SupplementaryDayResponse `json:"records"`
}

// DashboardStats aggregates one tenant's supplementary days.
type DashboardStats struct {
	PendingCount       int64            `json:"pending_count"`
	ApprovedCount      int64            `json:"approved_count"`
	RejectedCount      int64            `json:"rejected_count"`
	RecoveredCount     int64            `json:"recovered_count"`
	TotalApprovedHours string           `json:"total_approved_hours"`
	ByType             map[string]int64 `json:"by_type"`
}

// BalanceResponse is an employee's approved-but-unconverted position.
type BalanceResponse struct {
	EmployeeID     string `json:"employee_id"`
	AvailableHours string `json:"available_hours"`
	AvailableDays  string `json:"available_days"` // half-day granularity
	RecordCount    int    `json:"record_count"`
}

type ConvertResponse struct {
	RecoveryDayID  string   `json:"recovery_day_id"`
	Days           string   `json:"days"`
	HoursConverted string   `json:"hours_converted"`
	RecordIDs      []string `json:"record_ids"`
}

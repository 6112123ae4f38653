package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type supplementaryRepository struct {
	db *database.DB
}

func NewSupplementaryRepository(db *database.DB) supplementary.Repository {
	return &supplementaryRepository{db: db}
}

const supplementaryColumns = `
	s.id, s.company_id, s.employee_id, s.attendance_event_id, s.date, s.type,
	s.hours, s.source, s.status, s.check_in, s.check_out,
	s.approved_hours, s.approved_by, s.approved_at, s.rejection_reason,
	s.notes, s.converted_to_recovery, s.recovery_day_id,
	s.created_at, s.updated_at`

func scanSupplementary(row pgx.Row, rec *supplementary.SupplementaryDay) error {
	return row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.AttendanceEventID, &rec.Date, &rec.Type,
		&rec.Hours, &rec.Source, &rec.Status, &rec.CheckIn, &rec.CheckOut,
		&rec.ApprovedHours, &rec.ApprovedBy, &rec.ApprovedAt, &rec.RejectionReason,
		&rec.Notes, &rec.ConvertedToRecovery, &rec.RecoveryDayID,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
}

// Create implements supplementary.Repository. The unique index
// supplementary_days_company_employee_date_key turns a lost race into
// ErrDuplicateForDate.
func (r *supplementaryRepository) Create(ctx context.Context, record supplementary.SupplementaryDay) (supplementary.SupplementaryDay, error) {
	q := GetQuerier(ctx, r.db)

	record.ID = uuid.New().String()

	query := `
		INSERT INTO supplementary_days (
			id, company_id, employee_id, attendance_event_id, date, type,
			hours, source, status, check_in, check_out, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.CompanyID,
		record.EmployeeID,
		record.AttendanceEventID,
		record.Date,
		record.Type,
		record.Hours,
		record.Source,
		record.Status,
		record.CheckIn,
		record.CheckOut,
		record.Notes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return supplementary.SupplementaryDay{}, supplementary.ErrDuplicateForDate
		}
		return supplementary.SupplementaryDay{}, fmt.Errorf("failed to create supplementary day: %w", err)
	}

	return record, nil
}

// GetByID implements supplementary.Repository.
func (r *supplementaryRepository) GetByID(ctx context.Context, id string, companyID string) (supplementary.SupplementaryDay, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name
		FROM supplementary_days s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1 AND s.company_id = $2
	`, supplementaryColumns)

	var rec supplementary.SupplementaryDay
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.AttendanceEventID, &rec.Date, &rec.Type,
		&rec.Hours, &rec.Source, &rec.Status, &rec.CheckIn, &rec.CheckOut,
		&rec.ApprovedHours, &rec.ApprovedBy, &rec.ApprovedAt, &rec.RejectionReason,
		&rec.Notes, &rec.ConvertedToRecovery, &rec.RecoveryDayID,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return supplementary.SupplementaryDay{}, supplementary.ErrNotFound
		}
		return supplementary.SupplementaryDay{}, fmt.Errorf("failed to get supplementary day by ID: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements supplementary.Repository. Full-day bounds
// on the date column so a time-of-day component can never split one
// calendar day into two keys.
func (r *supplementaryRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*supplementary.SupplementaryDay, error) {
	q := GetQuerier(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := fmt.Sprintf(`
		SELECT %s
		FROM supplementary_days s
		WHERE s.employee_id = $1
		  AND s.date >= $2 AND s.date < $3
		  AND s.company_id = $4
		LIMIT 1
	`, supplementaryColumns)

	var rec supplementary.SupplementaryDay
	err := scanSupplementary(q.QueryRow(ctx, query, employeeID, dayStart, dayEnd, companyID), &rec)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no existing record for this reference date
		}
		return nil, fmt.Errorf("failed to get supplementary day by employee and date: %w", err)
	}

	return &rec, nil
}

// Update implements supplementary.Repository.
func (r *supplementaryRepository) Update(ctx context.Context, record supplementary.SupplementaryDay) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE supplementary_days SET
			status = $1,
			approved_hours = $2,
			approved_by = $3,
			approved_at = $4,
			rejection_reason = $5,
			notes = $6,
			converted_to_recovery = $7,
			recovery_day_id = $8,
			updated_at = NOW()
		WHERE id = $9 AND company_id = $10
	`

	tag, err := q.Exec(ctx, query,
		record.Status,
		record.ApprovedHours,
		record.ApprovedBy,
		record.ApprovedAt,
		record.RejectionReason,
		record.Notes,
		record.ConvertedToRecovery,
		record.RecoveryDayID,
		record.ID,
		record.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplementary day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return supplementary.ErrNotFound
	}

	return nil
}

// Delete implements supplementary.Repository.
func (r *supplementaryRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM supplementary_days WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete supplementary day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return supplementary.ErrNotFound
	}

	return nil
}

// List implements supplementary.Repository.
func (r *supplementaryRepository) List(ctx context.Context, filter supplementary.Filter, companyID string) ([]supplementary.SupplementaryDay, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "s.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND s.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.BranchID != nil && *filter.BranchID != "" {
		baseWhere += fmt.Sprintf(" AND e.branch_id = $%d", argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}
	if filter.PositionID != nil && *filter.PositionID != "" {
		baseWhere += fmt.Sprintf(" AND e.position_id = $%d", argIdx)
		args = append(args, *filter.PositionID)
		argIdx++
	}

	// Count total
	countQuery := `
		SELECT COUNT(*)
		FROM supplementary_days s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count supplementary days: %w", err)
	}

	// Build ORDER BY
	orderByField := "s.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "hours":
		orderByField = "s.hours"
	case "status":
		orderByField = "s.status"
	case "created_at":
		orderByField = "s.created_at"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name
		FROM supplementary_days s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, supplementaryColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query supplementary days: %w", err)
	}
	defer rows.Close()

	var records []supplementary.SupplementaryDay
	for rows.Next() {
		var rec supplementary.SupplementaryDay
		err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.AttendanceEventID, &rec.Date, &rec.Type,
			&rec.Hours, &rec.Source, &rec.Status, &rec.CheckIn, &rec.CheckOut,
			&rec.ApprovedHours, &rec.ApprovedBy, &rec.ApprovedAt, &rec.RejectionReason,
			&rec.Notes, &rec.ConvertedToRecovery, &rec.RecoveryDayID,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan supplementary day: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// GetApprovedUnconverted implements supplementary.Repository.
func (r *supplementaryRepository) GetApprovedUnconverted(ctx context.Context, employeeID string, companyID string) ([]supplementary.SupplementaryDay, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM supplementary_days s
		WHERE s.employee_id = $1
		  AND s.company_id = $2
		  AND s.status = $3
		  AND s.converted_to_recovery = FALSE
		ORDER BY s.date ASC
	`, supplementaryColumns)

	rows, err := q.Query(ctx, query, employeeID, companyID, supplementary.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved unconverted records: %w", err)
	}
	defer rows.Close()

	var records []supplementary.SupplementaryDay
	for rows.Next() {
		var rec supplementary.SupplementaryDay
		if err := scanSupplementary(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan supplementary day: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// MarkConverted implements supplementary.Repository. The status guard in the
// WHERE clause makes a concurrent revoke or double conversion surface as a
// row-count mismatch and roll the transaction back.
func (r *supplementaryRepository) MarkConverted(ctx context.Context, ids []string, recoveryDayID string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE supplementary_days SET
			status = $1,
			converted_to_recovery = TRUE,
			recovery_day_id = $2,
			updated_at = NOW()
		WHERE id = ANY($3)
		  AND company_id = $4
		  AND status = $5
		  AND converted_to_recovery = FALSE
	`

	tag, err := q.Exec(ctx, query,
		supplementary.StatusRecovered,
		recoveryDayID,
		ids,
		companyID,
		supplementary.StatusApproved,
	)
	if err != nil {
		return fmt.Errorf("failed to mark records converted: %w", err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return supplementary.ErrRecordNotConvertible
	}

	return nil
}

// StatusCounts implements supplementary.Repository.
func (r *supplementaryRepository) StatusCounts(ctx context.Context, companyID string) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT status, COUNT(*)
		FROM supplementary_days
		WHERE company_id = $1
		GROUP BY status
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}

// TypeCounts implements supplementary.Repository.
func (r *supplementaryRepository) TypeCounts(ctx context.Context, companyID string) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT type, COUNT(*)
		FROM supplementary_days
		WHERE company_id = $1
		GROUP BY type
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var dayType string
		var count int64
		if err := rows.Scan(&dayType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		counts[dayType] = count
	}

	return counts, nil
}

// TotalApprovedHours implements supplementary.Repository.
func (r *supplementaryRepository) TotalApprovedHours(ctx context.Context, companyID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(COALESCE(approved_hours, hours)), 0)
		FROM supplementary_days
		WHERE company_id = $1
		  AND status IN ($2, $3)
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, companyID, supplementary.StatusApproved, supplementary.StatusRecovered).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved hours: %w", err)
	}

	return total, nil
}

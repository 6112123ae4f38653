package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/holiday"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// GetByDate implements holiday.HolidayRepository. Matches the whole calendar
// day regardless of the time component stored on the row.
func (r *holidayRepository) GetByDate(ctx context.Context, companyID string, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT id, company_id, name, date, created_at, updated_at
		FROM holidays
		WHERE company_id = $1
		  AND date >= $2 AND date < $3
		LIMIT 1
	`

	var h holiday.Holiday
	err := q.QueryRow(ctx, query, companyID, dayStart, dayEnd).Scan(
		&h.ID, &h.CompanyID, &h.Name, &h.Date, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return &h, nil
}

// GetByDateRange implements holiday.HolidayRepository.
func (r *holidayRepository) GetByDateRange(ctx context.Context, companyID string, startDate time.Time, endDate time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rangeEnd := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	query := `
		SELECT id, company_id, name, date, created_at, updated_at
		FROM holidays
		WHERE company_id = $1
		  AND date >= $2 AND date < $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, companyID, startDate, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Name, &h.Date, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type clockEventRepository struct {
	db *database.DB
}

func NewClockEventRepository(db *database.DB) attendance.ClockEventRepository {
	return &clockEventRepository{db: db}
}

const clockEventColumns = `
	id, company_id, employee_id, type, timestamp, paired_in_id, worked_hours, created_at`

// Create implements attendance.ClockEventRepository.
func (r *clockEventRepository) Create(ctx context.Context, event attendance.ClockEvent) (attendance.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	event.ID = uuid.New().String()

	query := `
		INSERT INTO clock_events (
			id, company_id, employee_id, type, timestamp, paired_in_id, worked_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.CompanyID,
		event.EmployeeID,
		event.Type,
		event.Timestamp,
		event.PairedInID,
		event.WorkedHours,
	).Scan(&event.CreatedAt)
	if err != nil {
		return attendance.ClockEvent{}, fmt.Errorf("failed to create clock event: %w", err)
	}

	return event, nil
}

// GetOpenIn implements attendance.ClockEventRepository. An IN event is open
// while no OUT event references it as its pair.
func (r *clockEventRepository) GetOpenIn(ctx context.Context, employeeID string, companyID string) (*attendance.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ci.id, ci.company_id, ci.employee_id, ci.type, ci.timestamp,
		       ci.paired_in_id, ci.worked_hours, ci.created_at
		FROM clock_events ci
		WHERE ci.employee_id = $1
		  AND ci.company_id = $2
		  AND ci.type = $3
		  AND NOT EXISTS (
			SELECT 1 FROM clock_events co
			WHERE co.paired_in_id = ci.id AND co.type = $4
		  )
		ORDER BY ci.timestamp DESC
		LIMIT 1
	`

	var event attendance.ClockEvent
	err := q.QueryRow(ctx, query, employeeID, companyID, attendance.EventIn, attendance.EventOut).Scan(
		&event.ID, &event.CompanyID, &event.EmployeeID, &event.Type,
		&event.Timestamp, &event.PairedInID, &event.WorkedHours, &event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open clock-in: %w", err)
	}

	return &event, nil
}

// GetOutEventsInWindow implements attendance.ClockEventRepository. Returns
// completed OUT events with positive worked hours in [start, end), ordered
// by timestamp.
func (r *clockEventRepository) GetOutEventsInWindow(ctx context.Context, companyID string, start time.Time, end time.Time) ([]attendance.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM clock_events
		WHERE company_id = $1
		  AND type = $2
		  AND timestamp >= $3 AND timestamp < $4
		  AND worked_hours IS NOT NULL AND worked_hours > 0
		ORDER BY timestamp ASC
	`, clockEventColumns)

	rows, err := q.Query(ctx, query, companyID, attendance.EventOut, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query clock-out events: %w", err)
	}
	defer rows.Close()

	var events []attendance.ClockEvent
	for rows.Next() {
		var event attendance.ClockEvent
		err := rows.Scan(
			&event.ID, &event.CompanyID, &event.EmployeeID, &event.Type,
			&event.Timestamp, &event.PairedInID, &event.WorkedHours, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// GetPrecedingIn implements attendance.ClockEventRepository. Finds the most
// recent IN event strictly before the given instant, within two calendar
// days so a stale open IN from weeks ago never pairs with a fresh OUT.
func (r *clockEventRepository) GetPrecedingIn(ctx context.Context, employeeID string, before time.Time, companyID string) (*attendance.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	floor := time.Date(before.Year(), before.Month(), before.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	query := fmt.Sprintf(`
		SELECT %s
		FROM clock_events
		WHERE employee_id = $1
		  AND company_id = $2
		  AND type = $3
		  AND timestamp < $4
		  AND timestamp >= $5
		ORDER BY timestamp DESC
		LIMIT 1
	`, clockEventColumns)

	var event attendance.ClockEvent
	err := q.QueryRow(ctx, query, employeeID, companyID, attendance.EventIn, before, floor).Scan(
		&event.ID, &event.CompanyID, &event.EmployeeID, &event.Type,
		&event.Timestamp, &event.PairedInID, &event.WorkedHours, &event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preceding clock-in: %w", err)
	}

	return &event, nil
}

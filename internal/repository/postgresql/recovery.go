package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/workpulse/attendance-backend-go/internal/domain/recovery"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type recoveryDayRepository struct {
	db *database.DB
}

func NewRecoveryDayRepository(db *database.DB) recovery.RecoveryDayRepository {
	return &recoveryDayRepository{db: db}
}

// Create implements recovery.RecoveryDayRepository.
func (r *recoveryDayRepository) Create(ctx context.Context, entry recovery.RecoveryDay) (recovery.RecoveryDay, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.New().String()

	query := `
		INSERT INTO recovery_days (
			id, company_id, employee_id, days, hours, source_type, notes, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.CompanyID,
		entry.EmployeeID,
		entry.Days,
		entry.Hours,
		entry.SourceType,
		entry.Notes,
		entry.CreatedBy,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return recovery.RecoveryDay{}, fmt.Errorf("failed to create recovery day: %w", err)
	}

	return entry, nil
}

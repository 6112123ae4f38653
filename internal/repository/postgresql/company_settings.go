package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/workpulse/attendance-backend-go/internal/config"
	"github.com/workpulse/attendance-backend-go/internal/domain/company"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type companySettingsRepository struct {
	db       *database.DB
	defaults company.Settings
}

// NewCompanySettingsRepository wires the configured defaults in so tenants
// without a settings row still get a usable threshold and conversion rate.
func NewCompanySettingsRepository(db *database.DB, engine config.EngineConfig) company.SettingsRepository {
	return &companySettingsRepository{
		db: db,
		defaults: company.Settings{
			SupplementaryMinMinutes: engine.DefaultMinMinutes,
			DailyWorkingHours:       decimal.NewFromFloat(engine.DefaultDailyWorkingHours),
			RecoveryConversionRate:  decimal.NewFromFloat(engine.DefaultConversionRate),
		},
	}
}

// GetSettings implements company.SettingsRepository.
func (r *companySettingsRepository) GetSettings(ctx context.Context, companyID string) (company.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, supplementary_min_minutes, daily_working_hours,
		       recovery_conversion_rate, created_at, updated_at
		FROM company_settings
		WHERE company_id = $1
	`

	var settings company.Settings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&settings.CompanyID,
		&settings.SupplementaryMinMinutes,
		&settings.DailyWorkingHours,
		&settings.RecoveryConversionRate,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			defaults := r.defaults
			defaults.CompanyID = companyID
			return defaults, nil
		}
		return company.Settings{}, fmt.Errorf("failed to get company settings: %w", err)
	}

	return settings, nil
}

// ListCompanyIDs implements company.SettingsRepository. Returns every active
// tenant so the reconciliation sweep can visit each one.
func (r *companySettingsRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM companies WHERE deleted_at IS NULL ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list company IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

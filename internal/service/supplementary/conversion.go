package supplementary

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/workpulse/attendance-backend-go/internal/domain/recovery"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

var two = decimal.NewFromInt(2)

// floorToHalf rounds down to the nearest half day.
func floorToHalf(d decimal.Decimal) decimal.Decimal {
	return d.Mul(two).Floor().Div(two)
}

// isHalfDayMultiple reports whether d is a positive multiple of 0.5.
func isHalfDayMultiple(d decimal.Decimal) bool {
	if !d.IsPositive() {
		return false
	}
	doubled := d.Mul(two)
	return doubled.Equal(doubled.Floor())
}

// daysFromHours converts effective hours into recovery days under the
// tenant's daily-working-hours constant and conversion rate.
func daysFromHours(hours, dailyWorkingHours, rate decimal.Decimal) decimal.Decimal {
	if dailyWorkingHours.IsZero() {
		return decimal.Zero
	}
	return floorToHalf(hours.Div(dailyWorkingHours).Mul(rate))
}

// Balance implements supplementary.Service: the employee's cumulative
// approved-but-unconverted position.
func (s *ServiceImpl) Balance(ctx context.Context, companyID string, employeeID string) (supplementary.BalanceResponse, error) {
	records, err := s.Repository.GetApprovedUnconverted(ctx, employeeID, companyID)
	if err != nil {
		return supplementary.BalanceResponse{}, fmt.Errorf("failed to load approved records: %w", err)
	}

	settings, err := s.settingsRepo.GetSettings(ctx, companyID)
	if err != nil {
		return supplementary.BalanceResponse{}, fmt.Errorf("failed to get tenant settings: %w", err)
	}

	totalHours := decimal.Zero
	for _, rec := range records {
		totalHours = totalHours.Add(rec.EffectiveHours())
	}

	days := daysFromHours(totalHours, settings.DailyWorkingHours, settings.RecoveryConversionRate)

	return supplementary.BalanceResponse{
		EmployeeID:     employeeID,
		AvailableHours: totalHours.String(),
		AvailableDays:  days.String(),
		RecordCount:    len(records),
	}, nil
}

// Convert implements supplementary.Service. The selected records flip to
// recovered and the recovery-day entry is created in one transaction:
// either everything commits or nothing does.
func (s *ServiceImpl) Convert(ctx context.Context, companyID string, actorID string, req supplementary.ConvertRequest) (supplementary.ConvertResponse, error) {
	if err := req.Validate(); err != nil {
		return supplementary.ConvertResponse{}, err
	}
	if !isHalfDayMultiple(req.Days) {
		return supplementary.ConvertResponse{}, supplementary.ErrInvalidDayGranularity
	}

	settings, err := s.settingsRepo.GetSettings(ctx, companyID)
	if err != nil {
		return supplementary.ConvertResponse{}, fmt.Errorf("failed to get tenant settings: %w", err)
	}

	// Validate the whole selection before mutating anything.
	totalHours := decimal.Zero
	for _, id := range req.RecordIDs {
		rec, err := s.getForTransition(ctx, id, companyID)
		if err != nil {
			return supplementary.ConvertResponse{}, err
		}
		if rec.EmployeeID != req.EmployeeID {
			return supplementary.ConvertResponse{}, supplementary.ErrRecordNotConvertible
		}
		if rec.Status != supplementary.StatusApproved || rec.ConvertedToRecovery {
			return supplementary.ConvertResponse{}, supplementary.ErrRecordNotConvertible
		}
		totalHours = totalHours.Add(rec.EffectiveHours())
	}

	maxDays := daysFromHours(totalHours, settings.DailyWorkingHours, settings.RecoveryConversionRate)
	if req.Days.GreaterThan(maxDays) {
		return supplementary.ConvertResponse{}, supplementary.ErrInsufficientBalance
	}

	var entry recovery.RecoveryDay
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		entry, txErr = s.RecoveryDayRepository.Create(ctx, recovery.RecoveryDay{
			CompanyID:  companyID,
			EmployeeID: req.EmployeeID,
			Days:       req.Days,
			Hours:      totalHours,
			SourceType: recovery.SourceSupplementaryConversion,
			Notes:      req.Notes,
			CreatedBy:  actorID,
		})
		if txErr != nil {
			return fmt.Errorf("create recovery day: %w", txErr)
		}
		if txErr := s.Repository.MarkConverted(ctx, req.RecordIDs, entry.ID, companyID); txErr != nil {
			return fmt.Errorf("mark records converted: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return supplementary.ConvertResponse{}, fmt.Errorf("conversion failed: %w", err)
	}

	return supplementary.ConvertResponse{
		RecoveryDayID:  entry.ID,
		Days:           req.Days.String(),
		HoursConverted: totalHours.String(),
		RecordIDs:      req.RecordIDs,
	}, nil
}

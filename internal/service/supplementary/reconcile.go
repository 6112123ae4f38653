package supplementary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

// Reconcile implements supplementary.Service. It is the safety net for the
// real-time path: re-derive supplementary days from the raw OUT events in
// [startDate, endDate] and create whatever the real-time recorder missed.
// It funnels every candidate through OnCheckOut, so the two paths cannot
// disagree, and rerunning over an overlapping window is harmless: the
// idempotency gate turns repeats into "existing".
func (s *ServiceImpl) Reconcile(ctx context.Context, companyID string, startDate, endDate time.Time) (supplementary.ReconcileResult, error) {
	var result supplementary.ReconcileResult

	windowStart := dayOf(startDate)
	windowEnd := dayOf(endDate).AddDate(0, 0, 1) // exclusive upper bound

	events, err := s.ClockEventRepository.GetOutEventsInWindow(ctx, companyID, windowStart, windowEnd)
	if err != nil {
		return result, fmt.Errorf("failed to load OUT events: %w", err)
	}

	for _, out := range events {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("sweep aborted after %d events: %w",
				result.Created+result.Existing+result.Skipped+result.Errors, err)
		}

		// Cheap short-circuit on the OUT event's own date before touching
		// any other table.
		day := dayOf(out.Timestamp)
		isSupp, _, err := s.classifier.Classify(ctx, companyID, day)
		if err != nil {
			slog.Error("sweep: classification failed",
				"company_id", companyID, "event_id", out.ID, "error", err)
			result.Errors++
			continue
		}
		if !isSupp {
			result.Skipped++
			continue
		}

		// Recover the check-in timestamp from the most recent preceding IN
		// event on the same day; a lone OUT degenerates to a zero-length
		// check-in at the OUT instant.
		checkIn := out.Timestamp
		inEvent, err := s.ClockEventRepository.GetPrecedingIn(ctx, out.EmployeeID, out.Timestamp, companyID)
		if err != nil {
			slog.Error("sweep: failed to find preceding IN event",
				"company_id", companyID, "event_id", out.ID, "error", err)
			result.Errors++
			continue
		}
		if inEvent != nil {
			checkIn = inEvent.Timestamp
		}

		hours := decimal.Zero
		if out.WorkedHours != nil {
			hours = *out.WorkedHours
		}

		detection := s.OnCheckOut(ctx, supplementary.CheckOutEvent{
			CompanyID:         companyID,
			EmployeeID:        out.EmployeeID,
			AttendanceEventID: out.ID,
			Date:              day,
			CheckIn:           checkIn,
			CheckOut:          out.Timestamp,
			HoursWorked:       hours,
		})

		switch {
		case detection.Created:
			result.Created++
		case detection.Reason == supplementary.ReasonAlreadyExists:
			result.Existing++
		case detection.Reason == supplementary.ReasonInternalError:
			result.Errors++
		default:
			result.Skipped++
		}
	}

	return result, nil
}

// ReconcileAll implements supplementary.Service. Tenants are processed
// serially, each under its own time budget, and one tenant's failure never
// aborts the others.
func (s *ServiceImpl) ReconcileAll(ctx context.Context, startDate, endDate time.Time) (map[string]supplementary.ReconcileResult, error) {
	companyIDs, err := s.settingsRepo.ListCompanyIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	results := make(map[string]supplementary.ReconcileResult, len(companyIDs))
	for _, companyID := range companyIDs {
		tenantCtx := ctx
		cancel := func() {}
		if s.tenantTimeout > 0 {
			tenantCtx, cancel = context.WithTimeout(ctx, s.tenantTimeout)
		}

		result, err := s.Reconcile(tenantCtx, companyID, startDate, endDate)
		cancel()

		if err != nil {
			slog.Error("sweep: tenant reconciliation failed",
				"company_id", companyID, "error", err)
			result.Errors++
		}
		results[companyID] = result

		slog.Info("sweep: tenant reconciled",
			"company_id", companyID,
			"created", result.Created,
			"existing", result.Existing,
			"skipped", result.Skipped,
			"errors", result.Errors)
	}

	return results, nil
}

package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

// SupplementaryJobs owns the nightly reconciliation sweep that backfills
// supplementary days missed by the real-time detection path.
type SupplementaryJobs struct {
	supplementarySvc supplementary.Service
	windowDays       int
}

func NewSupplementaryJobs(supplementarySvc supplementary.Service, windowDays int) *SupplementaryJobs {
	if windowDays < 1 {
		windowDays = 1
	}
	return &SupplementaryJobs{
		supplementarySvc: supplementarySvc,
		windowDays:       windowDays,
	}
}

func (j *SupplementaryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_supplementary_days", 1*time.Hour, j.ReconcileSupplementaryDays)
}

// ReconcileSupplementaryDays re-scans the trailing window ending yesterday
// for every tenant. The sweep is idempotent, so hours that already produced
// a record only bump the "existing" counter.
func (j *SupplementaryJobs) ReconcileSupplementaryDays(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	now := time.Now().UTC()
	endDate := now.AddDate(0, 0, -1)
	startDate := endDate.AddDate(0, 0, -(j.windowDays - 1))

	slog.Info("Cron: Starting supplementary day reconciliation",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	results, err := j.supplementarySvc.ReconcileAll(ctx, startDate, endDate)
	if err != nil {
		return err
	}

	var created, existing, skipped, errCount int
	for _, result := range results {
		created += result.Created
		existing += result.Existing
		skipped += result.Skipped
		errCount += result.Errors
	}

	slog.Info("Cron: Supplementary day reconciliation finished",
		"tenants", len(results),
		"created", created,
		"existing", existing,
		"skipped", skipped,
		"errors", errCount)
	return nil
}

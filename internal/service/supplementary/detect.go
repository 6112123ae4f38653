package supplementary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/workpulse/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

// OnCheckOut implements supplementary.Service. It runs inline on the worker
// that just persisted an OUT event, so every failure mode, expected or
// infrastructural, comes back as a DetectionResult. The attendance write
// that triggered it must never be rolled back or delayed by detection.
func (s *ServiceImpl) OnCheckOut(ctx context.Context, event supplementary.CheckOutEvent) supplementary.DetectionResult {
	result, err := s.detect(ctx, event)
	if err != nil {
		slog.Error("supplementary day detection failed",
			"company_id", event.CompanyID,
			"employee_id", event.EmployeeID,
			"attendance_event_id", event.AttendanceEventID,
			"error", err)
		return supplementary.DetectionResult{
			Created: false,
			Reason:  supplementary.ReasonInternalError,
			Detail:  err.Error(),
		}
	}
	return result
}

// detect applies the gates of the real-time recorder in strict order:
// night-shift date resolution, eligibility, idempotency, leave, threshold.
// It returns a non-nil error only for infrastructure failures.
func (s *ServiceImpl) detect(ctx context.Context, event supplementary.CheckOutEvent) (supplementary.DetectionResult, error) {
	// 1. Night-shift date resolution: the check-in date wins when it is
	// supplementary; otherwise the check-out date is tried. A shift starting
	// Saturday 22:00 keys to Saturday even when it ends Sunday morning.
	refDate := dayOf(event.CheckIn)
	isSupp, dayType, err := s.classifier.Classify(ctx, event.CompanyID, refDate)
	if err != nil {
		return supplementary.DetectionResult{}, fmt.Errorf("classify check-in date: %w", err)
	}
	if !isSupp {
		refDate = dayOf(event.CheckOut)
		isSupp, dayType, err = s.classifier.Classify(ctx, event.CompanyID, refDate)
		if err != nil {
			return supplementary.DetectionResult{}, fmt.Errorf("classify check-out date: %w", err)
		}
	}
	if !isSupp {
		return supplementary.DetectionResult{Reason: supplementary.ReasonNotSupplementaryDay}, nil
	}

	// 2. Eligibility gate.
	emp, err := s.EmployeeRepository.GetByID(ctx, event.EmployeeID, event.CompanyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return supplementary.DetectionResult{Reason: supplementary.ReasonEmployeeNotFound}, nil
		}
		return supplementary.DetectionResult{}, fmt.Errorf("get employee: %w", err)
	}
	if !emp.IsEligibleForOvertime {
		return supplementary.DetectionResult{Reason: supplementary.ReasonNotEligible}, nil
	}

	// 3. Idempotency gate: the re-entrancy guard that makes the real-time
	// and batch paths safe to race. The existing record is returned so a
	// duplicate trigger is a no-op, not an error.
	existing, err := s.Repository.GetByEmployeeAndDate(ctx, event.EmployeeID, refDate, event.CompanyID)
	if err != nil {
		return supplementary.DetectionResult{}, fmt.Errorf("check existing record: %w", err)
	}
	if existing != nil {
		return supplementary.DetectionResult{
			Reason: supplementary.ReasonAlreadyExists,
			Record: existing,
		}, nil
	}

	// 4. Leave gate.
	onLeave, err := s.LeaveRepository.HasApprovedLeaveOn(ctx, event.EmployeeID, refDate, event.CompanyID)
	if err != nil {
		return supplementary.DetectionResult{}, fmt.Errorf("check approved leave: %w", err)
	}
	if onLeave {
		return supplementary.DetectionResult{Reason: supplementary.ReasonOnLeave}, nil
	}

	// 5. Threshold gate: strictly below the configured minimum is
	// insufficient, exactly at it is sufficient.
	settings, err := s.settingsRepo.GetSettings(ctx, event.CompanyID)
	if err != nil {
		return supplementary.DetectionResult{}, fmt.Errorf("get tenant settings: %w", err)
	}
	minimum := settings.MinimumHours()
	if !event.HoursWorked.IsPositive() || event.HoursWorked.LessThan(minimum) {
		return supplementary.DetectionResult{
			Reason: supplementary.ReasonInsufficientHours,
			Detail: fmt.Sprintf("worked %sh, minimum is %sh", event.HoursWorked.String(), minimum.String()),
		}, nil
	}

	// 6. Create the pending record.
	var attendanceEventID *string
	if event.AttendanceEventID != "" {
		id := event.AttendanceEventID
		attendanceEventID = &id
	}
	checkIn := event.CheckIn
	checkOut := event.CheckOut
	note := fmt.Sprintf("Auto-detected %s work: %sh between %s and %s",
		dayType,
		event.HoursWorked.String(),
		checkIn.Format("2006-01-02 15:04"),
		checkOut.Format("2006-01-02 15:04"))

	record := supplementary.SupplementaryDay{
		CompanyID:         event.CompanyID,
		EmployeeID:        event.EmployeeID,
		AttendanceEventID: attendanceEventID,
		Date:              refDate,
		Type:              dayType,
		Hours:             event.HoursWorked,
		Source:            supplementary.SourceAutoDetected,
		Status:            supplementary.StatusPending,
		CheckIn:           &checkIn,
		CheckOut:          &checkOut,
		Notes:             &note,
	}

	created, err := s.Repository.Create(ctx, record)
	if err != nil {
		// The unique index on (company, employee, date) is the final
		// race-breaker: losing the race is the same outcome as hitting the
		// idempotency gate above.
		if errors.Is(err, supplementary.ErrDuplicateForDate) {
			winner, getErr := s.Repository.GetByEmployeeAndDate(ctx, event.EmployeeID, refDate, event.CompanyID)
			if getErr != nil || winner == nil {
				return supplementary.DetectionResult{}, fmt.Errorf("fetch record after duplicate insert: %w", err)
			}
			return supplementary.DetectionResult{
				Reason: supplementary.ReasonAlreadyExists,
				Record: winner,
			}, nil
		}
		return supplementary.DetectionResult{}, fmt.Errorf("create supplementary day: %w", err)
	}

	slog.Info("supplementary day detected",
		"company_id", created.CompanyID,
		"employee_id", created.EmployeeID,
		"date", created.Date.Format("2006-01-02"),
		"type", created.Type,
		"hours", created.Hours.String(),
		"source", created.Source)

	return supplementary.DetectionResult{Created: true, Record: &created}, nil
}

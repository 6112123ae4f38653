package supplementary

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/domain/company"
	"github.com/workpulse/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse/attendance-backend-go/internal/domain/recovery"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
	"golang.org/x/sync/errgroup"
)

type ServiceImpl struct {
	tx database.Transactor
	supplementary.Repository
	employee.EmployeeRepository
	leave.LeaveRepository
	attendance.ClockEventRepository
	recovery.RecoveryDayRepository
	settingsRepo  company.SettingsRepository
	classifier    *Classifier
	tenantTimeout time.Duration
}

func NewSupplementaryService(
	tx database.Transactor,
	supplementaryRepo supplementary.Repository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	clockEventRepo attendance.ClockEventRepository,
	recoveryRepo recovery.RecoveryDayRepository,
	settingsRepo company.SettingsRepository,
	classifier *Classifier,
	tenantTimeout time.Duration,
) supplementary.Service {
	return &ServiceImpl{
		tx:                    tx,
		Repository:            supplementaryRepo,
		EmployeeRepository:    employeeRepo,
		LeaveRepository:       leaveRepo,
		ClockEventRepository:  clockEventRepo,
		RecoveryDayRepository: recoveryRepo,
		settingsRepo:          settingsRepo,
		classifier:            classifier,
		tenantTimeout:         tenantTimeout,
	}
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// mapToResponse converts a SupplementaryDay entity to its response DTO.
func mapToResponse(rec supplementary.SupplementaryDay) supplementary.SupplementaryDayResponse {
	var employeeName string
	if rec.EmployeeName != nil {
		employeeName = *rec.EmployeeName
	}

	var approvedHours *string
	if rec.ApprovedHours != nil {
		s := rec.ApprovedHours.String()
		approvedHours = &s
	}

	var approvedAt *string
	if rec.ApprovedAt != nil {
		s := rec.ApprovedAt.Format("2006-01-02 15:04:05")
		approvedAt = &s
	}

	return supplementary.SupplementaryDayResponse{
		ID:                  rec.ID,
		EmployeeID:          rec.EmployeeID,
		EmployeeName:        employeeName,
		Date:                rec.Date.Format("2006-01-02"),
		Type:                string(rec.Type),
		Hours:               rec.Hours.String(),
		Source:              string(rec.Source),
		Status:              string(rec.Status),
		CheckIn:             timePtrToString(rec.CheckIn),
		CheckOut:            timePtrToString(rec.CheckOut),
		ApprovedHours:       approvedHours,
		ApprovedBy:          rec.ApprovedBy,
		ApprovedAt:          approvedAt,
		RejectionReason:     rec.RejectionReason,
		Notes:               rec.Notes,
		ConvertedToRecovery: rec.ConvertedToRecovery,
		RecoveryDayID:       rec.RecoveryDayID,
		CreatedAt:           rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:           rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Create implements supplementary.Service. Manual path for administrators;
// the same classification and uniqueness rules apply as on the auto path,
// but eligibility, leave, and threshold gates do not (the admin is asserting
// the work happened).
func (s *ServiceImpl) Create(ctx context.Context, companyID string, actorID string, req supplementary.CreateRequest) (supplementary.SupplementaryDayResponse, error) {
	if err := req.Validate(); err != nil {
		return supplementary.SupplementaryDayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return supplementary.SupplementaryDayResponse{}, employee.ErrEmployeeNotFound
		}
		return supplementary.SupplementaryDayResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	isSupp, dayType, err := s.classifier.Classify(ctx, companyID, date)
	if err != nil {
		return supplementary.SupplementaryDayResponse{}, err
	}
	if !isSupp {
		return supplementary.SupplementaryDayResponse{}, supplementary.ErrNotSupplementary
	}

	existing, err := s.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, date, companyID)
	if err != nil {
		return supplementary.SupplementaryDayResponse{}, fmt.Errorf("failed to check existing record: %w", err)
	}
	if existing != nil {
		return supplementary.SupplementaryDayResponse{}, supplementary.ErrDuplicateForDate
	}

	var checkIn, checkOut *time.Time
	if req.CheckIn != nil {
		if t, err := time.Parse("2006-01-02 15:04:05", *req.CheckIn); err == nil {
			checkIn = &t
		}
	}
	if req.CheckOut != nil {
		if t, err := time.Parse("2006-01-02 15:04:05", *req.CheckOut); err == nil {
			checkOut = &t
		}
	}

	notes := fmt.Sprintf("Created manually by %s", actorID)
	if req.Notes != nil && *req.Notes != "" {
		notes = *req.Notes
	}

	record := supplementary.SupplementaryDay{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		Type:       dayType,
		Hours:      req.Hours,
		Source:     supplementary.SourceManual,
		Status:     supplementary.StatusPending,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Notes:      &notes,
	}

	created, err := s.Repository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, supplementary.ErrDuplicateForDate) {
			return supplementary.SupplementaryDayResponse{}, supplementary.ErrDuplicateForDate
		}
		return supplementary.SupplementaryDayResponse{}, fmt.Errorf("failed to create supplementary day: %w", err)
	}

	return mapToResponse(created), nil
}

// Get implements supplementary.Service.
func (s *ServiceImpl) Get(ctx context.Context, companyID string, id string) (supplementary.SupplementaryDayResponse, error) {
	rec, err := s.Repository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, supplementary.ErrNotFound) {
			return supplementary.SupplementaryDayResponse{}, supplementary.ErrNotFound
		}
		return supplementary.SupplementaryDayResponse{}, fmt.Errorf("failed to get supplementary day: %w", err)
	}
	return mapToResponse(rec), nil
}

// List implements supplementary.Service.
func (s *ServiceImpl) List(ctx context.Context, companyID string, filter supplementary.Filter) (supplementary.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return supplementary.ListResponse{}, err
	}

	records, total, err := s.Repository.List(ctx, filter, companyID)
	if err != nil {
		return supplementary.ListResponse{}, fmt.Errorf("failed to list supplementary days: %w", err)
	}

	responses := make([]supplementary.SupplementaryDayResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapToResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return supplementary.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Records:    responses,
	}, nil
}

// Delete implements supplementary.Service. Only pending records may be
// deleted; approved, rejected, and recovered records are audit history.
func (s *ServiceImpl) Delete(ctx context.Context, companyID string, id string) error {
	rec, err := s.Repository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, supplementary.ErrNotFound) {
			return supplementary.ErrNotFound
		}
		return fmt.Errorf("failed to get supplementary day: %w", err)
	}

	if rec.Status != supplementary.StatusPending {
		return supplementary.ErrDeleteNotPending
	}

	if err := s.Repository.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("failed to delete supplementary day: %w", err)
	}
	return nil
}

// Stats implements supplementary.Service. The three aggregates are
// independent queries, fanned out in parallel.
func (s *ServiceImpl) Stats(ctx context.Context, companyID string) (supplementary.DashboardStats, error) {
	var stats supplementary.DashboardStats

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.Repository.StatusCounts(gctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to count by status: %w", err)
		}
		stats.PendingCount = counts[string(supplementary.StatusPending)]
		stats.ApprovedCount = counts[string(supplementary.StatusApproved)]
		stats.RejectedCount = counts[string(supplementary.StatusRejected)]
		stats.RecoveredCount = counts[string(supplementary.StatusRecovered)]
		return nil
	})

	g.Go(func() error {
		counts, err := s.Repository.TypeCounts(gctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to count by type: %w", err)
		}
		stats.ByType = counts
		return nil
	})

	g.Go(func() error {
		total, err := s.Repository.TotalApprovedHours(gctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to sum approved hours: %w", err)
		}
		stats.TotalApprovedHours = total.String()
		return nil
	})

	if err := g.Wait(); err != nil {
		return supplementary.DashboardStats{}, err
	}
	return stats, nil
}

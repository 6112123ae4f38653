package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

// ClockServiceImpl is the minimal ingest pipeline in front of the engine.
// It owns no schedules or locations; it records raw IN/OUT events and hands
// every OUT to the real-time recorder.
type ClockServiceImpl struct {
	attendance.ClockEventRepository
	detector supplementary.Service
}

func NewClockService(
	clockEventRepo attendance.ClockEventRepository,
	detector supplementary.Service,
) attendance.ClockService {
	return &ClockServiceImpl{
		ClockEventRepository: clockEventRepo,
		detector:             detector,
	}
}

// ClockIn implements attendance.ClockService.
func (c *ClockServiceImpl) ClockIn(ctx context.Context, companyID string, employeeID string) (attendance.ClockInResponse, error) {
	open, err := c.ClockEventRepository.GetOpenIn(ctx, employeeID, companyID)
	if err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to check open session: %w", err)
	}
	if open != nil {
		return attendance.ClockInResponse{}, attendance.ErrAlreadyClockedIn
	}

	nowUTC := time.Now().UTC()
	event, err := c.ClockEventRepository.Create(ctx, attendance.ClockEvent{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Type:       attendance.EventIn,
		Timestamp:  nowUTC,
	})
	if err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to create IN event: %w", err)
	}

	return attendance.ClockInResponse{
		EventID:    event.ID,
		EmployeeID: event.EmployeeID,
		Timestamp:  event.Timestamp.Format("2006-01-02 15:04:05"),
	}, nil
}

// ClockOut implements attendance.ClockService. The supplementary detection
// runs after the OUT event is persisted; its outcome rides along in the
// response but can never fail the clock-out itself.
func (c *ClockServiceImpl) ClockOut(ctx context.Context, companyID string, employeeID string) (attendance.ClockOutResponse, error) {
	open, err := c.ClockEventRepository.GetOpenIn(ctx, employeeID, companyID)
	if err != nil {
		return attendance.ClockOutResponse{}, fmt.Errorf("failed to check open session: %w", err)
	}
	if open == nil {
		return attendance.ClockOutResponse{}, attendance.ErrNotClockedIn
	}

	nowUTC := time.Now().UTC()
	workedHours := decimal.NewFromFloat(nowUTC.Sub(open.Timestamp).Hours()).Round(2)

	event, err := c.ClockEventRepository.Create(ctx, attendance.ClockEvent{
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		Type:        attendance.EventOut,
		Timestamp:   nowUTC,
		PairedInID:  &open.ID,
		WorkedHours: &workedHours,
	})
	if err != nil {
		return attendance.ClockOutResponse{}, fmt.Errorf("failed to create OUT event: %w", err)
	}

	detection := c.detector.OnCheckOut(ctx, supplementary.CheckOutEvent{
		CompanyID:         companyID,
		EmployeeID:        employeeID,
		AttendanceEventID: event.ID,
		Date:              nowUTC,
		CheckIn:           open.Timestamp,
		CheckOut:          nowUTC,
		HoursWorked:       workedHours,
	})

	return attendance.ClockOutResponse{
		EventID:     event.ID,
		EmployeeID:  employeeID,
		ClockIn:     open.Timestamp.Format("2006-01-02 15:04:05"),
		ClockOut:    nowUTC.Format("2006-01-02 15:04:05"),
		WorkedHours: workedHours.String(),
		Detection:   attendance.SummarizeDetection(detection),
	}, nil
}

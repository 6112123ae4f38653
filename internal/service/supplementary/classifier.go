package supplementary

import (
	"context"
	"fmt"
	"time"

	"github.com/workpulse/attendance-backend-go/internal/domain/holiday"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

// Classifier maps (tenant, date) to a supplementary day type. A holiday
// calendar match always wins, regardless of weekday. Safe for concurrent
// use; it holds no mutable state.
type Classifier struct {
	holidayRepo holiday.HolidayRepository
}

func NewClassifier(holidayRepo holiday.HolidayRepository) *Classifier {
	return &Classifier{holidayRepo: holidayRepo}
}

// Classify reports whether date is a supplementary day for the tenant and,
// if so, which type.
func (c *Classifier) Classify(ctx context.Context, companyID string, date time.Time) (bool, supplementary.DayType, error) {
	h, err := c.holidayRepo.GetByDate(ctx, companyID, date)
	if err != nil {
		return false, "", fmt.Errorf("failed to look up holiday calendar: %w", err)
	}
	if h != nil {
		return true, supplementary.TypeHoliday, nil
	}

	switch date.Weekday() {
	case time.Sunday:
		return true, supplementary.TypeWeekendSunday, nil
	case time.Saturday:
		return true, supplementary.TypeWeekendSaturday, nil
	default:
		return false, "", nil
	}
}

package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType distinguishes the two halves of a shift.
type EventType string

const (
	EventIn  EventType = "IN"
	EventOut EventType = "OUT"
)

// ClockEvent is one raw attendance event. OUT events carry the worked hours
// computed against the paired IN event; IN events carry none.
type ClockEvent struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	Type        EventType
	Timestamp   time.Time
	PairedInID  *string
	WorkedHours *decimal.Decimal
	CreatedAt   time.Time
}

package attendance

import (
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

type ClockInResponse struct {
	EventID    string `json:"event_id"`
	EmployeeID string `json:"employee_id"`
	Timestamp  string `json:"timestamp"`
}

// ClockOutResponse reports the closed shift plus the supplementary-day
// detection outcome piggybacked on the same request.
type ClockOutResponse struct {
	EventID     string            `json:"event_id"`
	EmployeeID  string            `json:"employee_id"`
	ClockIn     string            `json:"clock_in"`
	ClockOut    string            `json:"clock_out"`
	WorkedHours string            `json:"worked_hours"`
	Detection   *DetectionSummary `json:"supplementary_detection,omitempty"`
}

// DetectionSummary is the client-facing slice of a detection result.
type DetectionSummary struct {
	Created  bool    `json:"created"`
	Reason   string  `json:"reason,omitempty"`
	Detail   string  `json:"detail,omitempty"`
	RecordID *string `json:"record_id,omitempty"`
}

// SummarizeDetection trims a detection result down to what the clock-out
// response exposes.
func SummarizeDetection(result supplementary.DetectionResult) *DetectionSummary {
	summary := &DetectionSummary{
		Created: result.Created,
		Reason:  string(result.Reason),
		Detail:  result.Detail,
	}
	if result.Record != nil {
		summary.RecordID = &result.Record.ID
	}
	return summary
}

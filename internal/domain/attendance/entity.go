package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Check-in classification relative to shift start.
const (
	CheckInOnTime       = "on_time"
	CheckInSlightlyLate = "slightly_late"
	CheckInLate         = "late"
)

type Record struct {
	ID            string
	EmployeeID    string
	AssignmentID  string
	Date          time.Time
	CheckIn       *time.Time
	CheckOut      *time.Time
	CheckInStatus *string
	LateMinutes   *int
	BreakMinutes  int
	WorkedHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOpen reports whether the session has a check-in without a check-out.
func (r Record) IsOpen() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// ClassifyCheckIn maps lateness in minutes to a check-in status.
// Negative minutes mean an early arrival.
func ClassifyCheckIn(lateMinutes int) string {
	switch {
	case lateMinutes <= 0:
		return CheckInOnTime
	case lateMinutes <= 15:
		return CheckInSlightlyLate
	default:
		return CheckInLate
	}
}

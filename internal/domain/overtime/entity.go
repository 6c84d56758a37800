package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Approval is a manager-granted overtime window for one employee on one
// date. Immutable once created; a new grant must replace, not stack.
type Approval struct {
	ID         string
	EmployeeID string
	Date       time.Time
	// WindowFrom/WindowTo bound the creditable interval as HH:MM
	// wall-clock strings. Both empty means the grant has no window and
	// settlement falls back to hours worked beyond the daily threshold.
	WindowFrom string
	WindowTo   string
	CapHours   decimal.Decimal
	ManagerID  string
	Reason     string
	ApprovedAt time.Time
	CreatedAt  time.Time
}

// HasWindow reports whether the approval carries a creditable interval.
func (a Approval) HasWindow() bool {
	return a.WindowFrom != "" && a.WindowTo != ""
}

// MonthlyTracking is the per-employee monthly overtime budget read by the
// constraint validator and debited at settlement.
type MonthlyTracking struct {
	ID             string
	EmployeeID     string
	Year           int
	Month          int
	AllocatedHours decimal.Decimal
	UsedHours      decimal.Decimal
	RemainingHours decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

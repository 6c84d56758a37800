package overtime

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OvertimeService defines business logic for overtime approvals and
// monthly allocation tracking.
type OvertimeService interface {
	// Approve records a manager's pre-approval of overtime for an
	// employee on a date
	Approve(ctx context.Context, req ApproveRequest) (ApprovalResponse, error)

	// Lookup retrieves the approval for an employee on a date, if any
	Lookup(ctx context.Context, employeeID string, date time.Time) (*ApprovalResponse, error)

	// Tracking retrieves the monthly allocation tracking for an employee,
	// creating it with the default allocation when absent
	Tracking(ctx context.Context, employeeID string, year, month int) (TrackingResponse, error)

	// ConsumeAllocation deducts settled overtime hours from the employee's
	// monthly allocation
	ConsumeAllocation(ctx context.Context, employeeID string, date time.Time, hours decimal.Decimal) error
}

// Calculator settles payable overtime for a completed attendance session.
type Calculator interface {
	// Settle returns the payable overtime hours for a checkout against an
	// approval. A nil approval falls back to hours worked beyond the
	// standard day. The result is rounded to two decimal places and is
	// never negative.
	Settle(shiftEnd, checkout time.Time, approval *Approval, workedHours decimal.Decimal) decimal.Decimal
}

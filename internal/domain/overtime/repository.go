package overtime

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalRepository defines data access methods for overtime approvals.
type ApprovalRepository interface {
	// Create inserts a new approval. Returns ErrApprovalExists when the
	// employee already has an approval for the date.
	Create(ctx context.Context, approval Approval) (Approval, error)

	// GetByEmployeeAndDate retrieves the approval for an employee on a date.
	// Returns (nil, nil) when no approval exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Approval, error)

	// ListByEmployee retrieves approvals for an employee in a date range
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Approval, error)
}

// TrackingRepository defines data access methods for monthly overtime trackings.
type TrackingRepository interface {
	// GetByEmployeeAndMonth retrieves the tracking row for an employee's month.
	// Returns ErrTrackingNotFound when none exists.
	GetByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) (MonthlyTracking, error)

	// Create inserts a new monthly tracking row
	Create(ctx context.Context, tracking MonthlyTracking) (MonthlyTracking, error)

	// AddUsedHours increments used hours and decrements remaining hours atomically
	AddUsedHours(ctx context.Context, id string, hours decimal.Decimal) error
}

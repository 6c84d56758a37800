package schedule

import (
	"context"
	"time"
)

// ScheduleRepository defines data access for shift assignments. The
// store enforces a uniqueness guard on (employee, date) for rows whose
// status counts as work, so a concurrent double-insert surfaces as a
// conflict rather than a silent sixth day.
type ScheduleRepository interface {
	// Create inserts a new assignment. Returns ErrAssignmentConflict when
	// the (employee, date) work-row uniqueness guard fires.
	Create(ctx context.Context, assignment ShiftAssignment) (ShiftAssignment, error)

	GetByID(ctx context.Context, id string) (ShiftAssignment, error)

	// GetByEmployeeAndDate returns all assignments (any status) for the
	// employee on the date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]ShiftAssignment, error)

	// ListByEmployeeAndRange returns assignments in [from, to] inclusive,
	// ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]ShiftAssignment, error)

	List(ctx context.Context, filter ListFilter) ([]ShiftAssignment, error)

	UpdateStatus(ctx context.Context, id string, status Status) error

	// DeleteByEmployeeAndDate removes assignments on a date whose status
	// is in the given set. Used when comp-off usage replaces a shift.
	DeleteByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, statuses []Status) error
}

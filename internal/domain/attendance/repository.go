package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new attendance record
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for an employee on a date.
	// Returns (nil, nil) when no record exists. Used to prevent double
	// check-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// GetOpenSession retrieves the employee's open session, if any.
	// Returns (nil, nil) when no open session exists.
	GetOpenSession(ctx context.Context, employeeID string) (*Record, error)

	// Update closes an open attendance record. Returns
	// ErrAlreadyCheckedOut when the record is no longer open.
	Update(ctx context.Context, record Record) error

	// ListByEmployeeAndRange retrieves records for an employee in a
	// date range, ordered by date
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}

package compoff

import (
	"context"
	"time"
)

// EntryRepository defines data access methods for the comp-off ledger.
type EntryRepository interface {
	// Create inserts a ledger entry
	Create(ctx context.Context, entry Entry) (Entry, error)

	// ListByEmployee retrieves all entries for an employee, oldest first
	ListByEmployee(ctx context.Context, employeeID string) ([]Entry, error)

	// OldestUnusedEarned retrieves the oldest earned entry not yet
	// consumed by a used or expired entry. Returns (nil, nil) when the
	// balance is empty.
	OldestUnusedEarned(ctx context.Context, employeeID string) (*Entry, error)

	// CountByType counts entries of a type for an employee
	CountByType(ctx context.Context, employeeID string, entryType EntryType) (int, error)
}

// RequestRepository defines data access methods for comp-off requests.
type RequestRepository interface {
	// Create inserts a request in pending state. Returns
	// ErrDuplicateEarnRequest when a pending or approved request already
	// covers the work date.
	Create(ctx context.Context, request Request) (Request, error)

	// GetByID retrieves a request. Returns ErrRequestNotFound when absent.
	GetByID(ctx context.Context, id string) (Request, error)

	// Update persists a review decision
	Update(ctx context.Context, request Request) error

	// ListByEmployee retrieves requests for an employee in a date range
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)
}

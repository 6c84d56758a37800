package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for check-in, check-out, and
// overtime settlement at checkout time.
type AttendanceService interface {
	// CheckIn opens an attendance session against today's scheduled shift
	// and classifies the arrival
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes the open session, computes worked hours, and settles
	// payable overtime against any approval
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// GetRecord retrieves a single attendance record by ID
	GetRecord(ctx context.Context, id string) (RecordResponse, error)

	// ListMyRecords retrieves the authenticated employee's records in a
	// date range
	ListMyRecords(ctx context.Context, from, to time.Time) ([]RecordResponse, error)
}

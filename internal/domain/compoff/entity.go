package compoff

import "time"

// EntryType distinguishes ledger movements.
type EntryType string

const (
	EntryEarned  EntryType = "earned"
	EntryUsed    EntryType = "used"
	EntryExpired EntryType = "expired"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryEarned, EntryUsed, EntryExpired:
		return true
	}
	return false
}

// RequestStatus is the workflow state of a comp-off request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Entry is one ledger movement. EarnedMonth tags the month the credit
// originates from, formatted "2006-01".
type Entry struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Type        EntryType
	EarnedMonth string
	Notes       *string
	CreatedAt   time.Time
}

// Request is a comp-off earn request awaiting manager review.
type Request struct {
	ID              string
	EmployeeID      string
	WorkDate        time.Time
	Reason          *string
	Status          RequestStatus
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Balance summarizes an employee's ledger.
type Balance struct {
	Earned    int
	Used      int
	Expired   int
	Available int
}

// MonthlySummary is the per-month breakdown of ledger movements.
type MonthlySummary struct {
	Month   string
	Earned  int
	Used    int
	Expired int
}

package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the closed set of shift assignment states. Aggregation and
// validation switch on it exhaustively; unknown values are rejected at
// the boundary instead of falling through.
type Status string

const (
	StatusScheduled          Status = "scheduled"
	StatusCompleted          Status = "completed"
	StatusMissed             Status = "missed"
	StatusCancelled          Status = "cancelled"
	StatusLeave              Status = "leave"
	StatusLeaveHalfMorning   Status = "leave_half_morning"
	StatusLeaveHalfAfternoon Status = "leave_half_afternoon"
	StatusCompOffEarned      Status = "comp_off_earned"
	StatusCompOffTaken       Status = "comp_off_taken"
)

var StatusValues = []string{
	string(StatusScheduled),
	string(StatusCompleted),
	string(StatusMissed),
	string(StatusCancelled),
	string(StatusLeave),
	string(StatusLeaveHalfMorning),
	string(StatusLeaveHalfAfternoon),
	string(StatusCompOffEarned),
	string(StatusCompOffTaken),
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusMissed, StatusCancelled,
		StatusLeave, StatusLeaveHalfMorning, StatusLeaveHalfAfternoon,
		StatusCompOffEarned, StatusCompOffTaken:
		return true
	}
	return false
}

// IsLeave reports whether the status represents absence rather than work.
func (s Status) IsLeave() bool {
	switch s {
	case StatusLeave, StatusLeaveHalfMorning, StatusLeaveHalfAfternoon, StatusCompOffTaken:
		return true
	}
	return false
}

// CountsTowardAggregates reports whether the assignment contributes to
// weekly shift counts and hour totals. Comp-off earned days (worked on a
// day off) do count; leave and taken comp-off do not.
func (s Status) CountsTowardAggregates() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusMissed, StatusCompOffEarned:
		return true
	}
	return false
}

// BlocksSameDayAssignment reports whether an existing assignment with
// this status forbids another work shift on the same date.
func (s Status) BlocksSameDayAssignment() bool {
	return s.CountsTowardAggregates()
}

// ShiftAssignment is one employee's scheduled work block on one date.
// Start and end times are wall-clock HH:MM strings; an end at or before
// the start means the shift wraps past midnight.
type ShiftAssignment struct {
	ID           string
	DepartmentID string
	EmployeeID   string
	RoleID       *string
	Date         time.Time
	StartTime    string
	EndTime      string
	Status       Status
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Hours returns the shift duration in hours, or zero when the assignment
// carries no times (leave and comp-off rows).
func (a ShiftAssignment) Hours() decimal.Decimal {
	if a.StartTime == "" || a.EndTime == "" {
		return decimal.Zero
	}
	h, err := ShiftHours(a.StartTime, a.EndTime)
	if err != nil {
		return decimal.Zero
	}
	return h
}

// WeeklyAggregate is the per-employee weekly tally the constraint
// validator reads: counted shift days and their summed hours.
type WeeklyAggregate struct {
	DaysCount  int
	TotalHours decimal.Decimal
}

package schedule

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleService validates and stages shift assignments under the
// weekly/daily labor constraints.
type ScheduleService interface {
	// Propose runs the full constraint chain. Hard violations reject, soft
	// threshold crossings return a requires-approval advisory without
	// writing anything; only a clean pass persists the assignment.
	Propose(ctx context.Context, req ProposeShiftRequest) (ProposalResult, error)

	// Confirm is the explicit caller confirmation step after a
	// requires-approval outcome: hard gates re-run, soft thresholds are
	// taken as acknowledged, and the assignment is persisted.
	Confirm(ctx context.Context, req ProposeShiftRequest) (ProposalResult, error)

	List(ctx context.Context, filter ListFilter) ([]ShiftResponse, error)

	// WeeklyAggregate tallies counted shift days and hours for the
	// Monday-to-Sunday week containing weekStart. Read-only.
	WeeklyAggregate(ctx context.Context, employeeID string, weekStart time.Time) (WeeklyAggregate, error)

	// DailyHours sums counted shift hours for the employee on the date.
	DailyHours(ctx context.Context, employeeID string, date time.Time) (decimal.Decimal, error)

	// ValidateWeek reports how full an employee's week is against the
	// holiday-adjusted requirement.
	ValidateWeek(ctx context.Context, employeeID string, weekStart time.Time) (WeekValidationResponse, error)
}

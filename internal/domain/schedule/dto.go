package schedule

import (
	"time"

	"github.com/rosterlab/shift-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SHIFT ASSIGNMENT DTOs
// ========================================

type ProposeShiftRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`       // YYYY-MM-DD
	StartTime  string  `json:"start_time"` // HH:MM
	EndTime    string  `json:"end_time"`   // HH:MM
	RoleID     *string `json:"role_id,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *ProposeShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedDate returns the request date as a time. Validate must pass first.
func (r *ProposeShiftRequest) ParsedDate() time.Time {
	d, _ := time.Parse("2006-01-02", r.Date)
	return d
}

type ListFilter struct {
	EmployeeID   *string
	DepartmentID *string
	From         *time.Time
	To           *time.Time
}

// Decision is the outcome kind of a proposal.
type Decision string

const (
	DecisionAccepted         Decision = "accepted"
	DecisionRejected         Decision = "rejected"
	DecisionRequiresApproval Decision = "requires_overtime_approval"
)

// OvertimeAdvisory carries the figures shown to the approver when a
// proposal crosses a soft threshold.
type OvertimeAdvisory struct {
	Message          string          `json:"message"`
	ShiftHours       decimal.Decimal `json:"shift_hours"`
	TotalDailyHours  decimal.Decimal `json:"total_daily_hours"`
	TotalWeeklyHours decimal.Decimal `json:"total_weekly_hours"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	DailyOvertime    bool            `json:"daily_overtime"`
	WeeklyOvertime   bool            `json:"weekly_overtime"`
	AllocatedOTHours decimal.Decimal `json:"allocated_ot_hours"`
	UsedOTHours      decimal.Decimal `json:"used_ot_hours"`
	RemainingOTHours decimal.Decimal `json:"remaining_ot_hours"`
	HasSufficientOT  bool            `json:"has_sufficient_ot"`
}

// ProposalResult is the tagged outcome of a proposal: exactly one of
// Assignment (accepted), Reason (rejected) or Advisory (requires
// approval) is meaningful, selected by Decision.
type ProposalResult struct {
	Decision   Decision          `json:"status"`
	Assignment *ShiftResponse    `json:"assignment,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	Advisory   *OvertimeAdvisory `json:"overtime,omitempty"`
}

type ShiftResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	RoleID     *string `json:"role_id,omitempty"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
	Hours      string  `json:"hours"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

type WeekValidationResponse struct {
	EmployeeID     string `json:"employee_id"`
	WeekStart      string `json:"week_start"`
	WeekEnd        string `json:"week_end"`
	AssignedShifts int    `json:"assigned_shifts"`
	RequiredShifts int    `json:"required_shifts"`
	CanAssignMore  bool   `json:"can_assign_more"`
	TotalHours     string `json:"total_hours"`
}

package overtime

import (
	"time"

	"github.com/rosterlab/shift-backend-go/internal/pkg/validator"
)

// ========================================
// OVERTIME DTOs
// ========================================

type ApproveRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`        // YYYY-MM-DD
	WindowFrom string  `json:"window_from"` // HH:MM, optional with WindowTo
	WindowTo   string  `json:"window_to"`
	CapHours   float64 `json:"cap_hours"`
	Reason     string  `json:"reason"`
	ManagerID  string  `json:"-"`
}

func (r *ApproveRequest) Validate() error {
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

	if r.CapHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "cap_hours",
			Message: "cap_hours must be positive",
		})
	}

	// The window is optional but must come as a pair of valid clocks.
	if (r.WindowFrom == "") != (r.WindowTo == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "window_from",
			Message: "window_from and window_to must be provided together",
		})
	}
	if r.WindowFrom != "" && !validator.IsValidClock(r.WindowFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "window_from",
			Message: "window_from must be in HH:MM format",
		})
	}
	if r.WindowTo != "" && !validator.IsValidClock(r.WindowTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "window_to",
			Message: "window_to must be in HH:MM format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedDate returns the request date as a time. Validate must pass first.
func (r *ApproveRequest) ParsedDate() time.Time {
	d, _ := time.Parse("2006-01-02", r.Date)
	return d
}

type ApprovalResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	WindowFrom string `json:"window_from,omitempty"`
	WindowTo   string `json:"window_to,omitempty"`
	CapHours   string `json:"cap_hours"`
	ManagerID  string `json:"manager_id"`
	Reason     string `json:"reason"`
	ApprovedAt string `json:"approved_at"`
}

type TrackingResponse struct {
	EmployeeID     string `json:"employee_id"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	AllocatedHours string `json:"allocated_hours"`
	UsedHours      string `json:"used_hours"`
	RemainingHours string `json:"remaining_hours"`
}

func NewTrackingResponse(t MonthlyTracking) TrackingResponse {
	return TrackingResponse{
		EmployeeID:     t.EmployeeID,
		Year:           t.Year,
		Month:          t.Month,
		AllocatedHours: t.AllocatedHours.StringFixed(2),
		UsedHours:      t.UsedHours.StringFixed(2),
		RemainingHours: t.RemainingHours.StringFixed(2),
	}
}

func NewApprovalResponse(a Approval) ApprovalResponse {
	return ApprovalResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format("2006-01-02"),
		WindowFrom: a.WindowFrom,
		WindowTo:   a.WindowTo,
		CapHours:   a.CapHours.StringFixed(2),
		ManagerID:  a.ManagerID,
		Reason:     a.Reason,
		ApprovedAt: a.ApprovedAt.Format("2006-01-02 15:04:05"),
	}
}

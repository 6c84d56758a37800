package attendance

import (
	"time"

	"github.com/rosterlab/shift-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id"`
	At         *string `json:"at,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.At != nil {
		if _, err := time.Parse(time.RFC3339, *r.At); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "at",
				Message: "at must be a valid RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedAt returns the override timestamp, or nil when the server clock
// should be used.
func (r *CheckInRequest) ParsedAt() *time.Time {
	if r.At == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *r.At)
	if err != nil {
		return nil
	}
	return &t
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	At         *string `json:"at,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.At != nil {
		if _, err := time.Parse(time.RFC3339, *r.At); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "at",
				Message: "at must be a valid RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CheckOutRequest) ParsedAt() *time.Time {
	if r.At == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *r.At)
	if err != nil {
		return nil
	}
	return &t
}

type RecordResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	AssignmentID  string  `json:"assignment_id"`
	Date          string  `json:"date"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	CheckInStatus *string `json:"check_in_status,omitempty"`
	LateMinutes   *int    `json:"late_minutes,omitempty"`
	BreakMinutes  int     `json:"break_minutes"`
	WorkedHours   string  `json:"worked_hours"`
	OvertimeHours string  `json:"overtime_hours"`
	Notes         *string `json:"notes,omitempty"`
}

func NewRecordResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		AssignmentID:  rec.AssignmentID,
		Date:          rec.Date.Format("2006-01-02"),
		CheckInStatus: rec.CheckInStatus,
		LateMinutes:   rec.LateMinutes,
		BreakMinutes:  rec.BreakMinutes,
		WorkedHours:   rec.WorkedHours.StringFixed(2),
		OvertimeHours: rec.OvertimeHours.StringFixed(2),
		Notes:         rec.Notes,
	}
	if rec.CheckIn != nil {
		s := rec.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &s
	}
	if rec.CheckOut != nil {
		s := rec.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &s
	}
	return resp
}

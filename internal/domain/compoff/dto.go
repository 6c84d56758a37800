package compoff

import (
	"time"

	"github.com/rosterlab/shift-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.WorkDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CreateRequestRequest) ParsedWorkDate() time.Time {
	d, _ := time.Parse("2006-01-02", r.WorkDate)
	return d
}

type ReviewRequest struct {
	RequestID       string  `json:"-"`
	ReviewerID      string  `json:"-"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type UseRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *UseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *UseRequest) ParsedDate() time.Time {
	d, _ := time.Parse("2006-01-02", r.Date)
	return d
}

type RequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	WorkDate        string  `json:"work_date"`
	Reason          *string `json:"reason,omitempty"`
	Status          string  `json:"status"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func NewRequestResponse(req Request) RequestResponse {
	resp := RequestResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		WorkDate:        req.WorkDate.Format("2006-01-02"),
		Reason:          req.Reason,
		Status:          string(req.Status),
		ReviewedBy:      req.ReviewedBy,
		RejectionReason: req.RejectionReason,
	}
	if req.ReviewedAt != nil {
		s := req.ReviewedAt.Format("2006-01-02 15:04:05")
		resp.ReviewedAt = &s
	}
	return resp
}

type EntryResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	EarnedMonth string  `json:"earned_month"`
	Notes       *string `json:"notes,omitempty"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Date:        e.Date.Format("2006-01-02"),
		Type:        string(e.Type),
		EarnedMonth: e.EarnedMonth,
		Notes:       e.Notes,
	}
}

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Earned     int    `json:"earned"`
	Used       int    `json:"used"`
	Expired    int    `json:"expired"`
	Available  int    `json:"available"`
}

type MonthlySummaryResponse struct {
	Month   string `json:"month"`
	Earned  int    `json:"earned"`
	Used    int    `json:"used"`
	Expired int    `json:"expired"`
}

package response

import (
	"errors"
	"net/http"

	"github.com/rosterlab/shift-backend-go/internal/domain/attendance"
	"github.com/rosterlab/shift-backend-go/internal/domain/auth"
	"github.com/rosterlab/shift-backend-go/internal/domain/compoff"
	"github.com/rosterlab/shift-backend-go/internal/domain/employee"
	"github.com/rosterlab/shift-backend-go/internal/domain/overtime"
	"github.com/rosterlab/shift-backend-go/internal/domain/schedule"
	"github.com/rosterlab/shift-backend-go/internal/domain/user"
	"github.com/rosterlab/shift-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Comp-off expiry carries the earned and current months.
	var expiredErr *compoff.ExpiredError
	if errors.As(err, &expiredErr) {
		BadRequest(w, expiredErr.Error(), map[string]string{
			"earned_month":  expiredErr.EarnedMonth,
			"current_month": expiredErr.CurrentMonth,
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound):
		Unauthorized(w, "Refresh token cookie not found")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token has been revoked")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrManagerPrivilegeRequired):
		Forbidden(w, "Manager privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrRoleNotFound):
		NotFound(w, "Role not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, schedule.ErrAssignmentConflict):
		Conflict(w, "A conflicting assignment was created concurrently")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrApprovalExists):
		Conflict(w, "An overtime approval already exists for this employee and date")
	case errors.Is(err, overtime.ErrApprovalNotFound):
		NotFound(w, "Overtime approval not found")
	case errors.Is(err, overtime.ErrTrackingNotFound):
		NotFound(w, "Overtime tracking not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		BadRequest(w, "Employee already checked in today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance session already closed")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open attendance session to check out", nil)
	case errors.Is(err, attendance.ErrNoShiftToday):
		BadRequest(w, "No scheduled shift for today", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Comp-off domain errors
	case errors.Is(err, compoff.ErrRequestNotFound):
		NotFound(w, "Comp-off request not found")
	case errors.Is(err, compoff.ErrRequestNotPending):
		Conflict(w, "Comp-off request already reviewed")
	case errors.Is(err, compoff.ErrNotNonWorkingDay):
		BadRequest(w, "Comp-off can only be earned on a non-working day", nil)
	case errors.Is(err, compoff.ErrInsufficientBalance):
		BadRequest(w, "No comp-off credit available", nil)
	case errors.Is(err, compoff.ErrDuplicateEarnRequest):
		Conflict(w, "Comp-off already requested for this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

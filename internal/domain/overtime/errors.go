package overtime

import "errors"

// Overtime domain errors
var (
	ErrApprovalExists   = errors.New("overtime already approved for this date")
	ErrApprovalNotFound = errors.New("overtime approval not found")
	ErrTrackingNotFound = errors.New("overtime tracking not found")
)

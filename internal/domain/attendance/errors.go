package attendance

import "errors"

var (
	ErrAlreadyCheckedIn  = errors.New("employee already checked in today")
	ErrAlreadyCheckedOut = errors.New("attendance session already closed")
	ErrNotCheckedIn      = errors.New("no open attendance session to check out")
	ErrNoShiftToday      = errors.New("no scheduled shift for today")
	ErrRecordNotFound    = errors.New("attendance record not found")
)

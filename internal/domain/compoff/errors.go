package compoff

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound      = errors.New("comp-off request not found")
	ErrRequestNotPending    = errors.New("comp-off request already reviewed")
	ErrNotNonWorkingDay     = errors.New("comp-off can only be earned on a non-working day")
	ErrInsufficientBalance  = errors.New("no comp-off credit available")
	ErrDuplicateEarnRequest = errors.New("comp-off already requested for this date")
)

// ExpiredError rejects a use attempt against a credit earned in an
// earlier month.
type ExpiredError struct {
	EarnedMonth  string
	CurrentMonth string
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("comp-off earned in %s cannot be used in %s", e.EarnedMonth, e.CurrentMonth)
}

package schedule

import "errors"

// Schedule domain errors. Hard policy gates are not errors; they come
// back as rejected ProposalResults.
var (
	ErrAssignmentNotFound = errors.New("shift assignment not found")
	ErrAssignmentConflict = errors.New("conflicting assignment was created concurrently")
)

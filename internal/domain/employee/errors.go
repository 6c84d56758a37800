package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrRoleNotFound     = errors.New("role not found")
)

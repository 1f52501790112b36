package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeIDExists     = errors.New("employee ID already exists")
	ErrEmailExists          = errors.New("email already registered")
	ErrUnknownPosition      = errors.New("position is not configured")
	ErrUnknownBranch        = errors.New("branch is not configured")
	ErrEmployeeInactive     = errors.New("employee is inactive")
	ErrFutureDateNotAllowed = errors.New("date cannot be in the future")
)

package payroll

import "errors"

var (
	ErrConfigNotFound    = errors.New("payroll configuration not found")
	ErrRateNotConfigured = errors.New("no daily rate configured for position and branch")
)

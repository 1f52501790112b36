package attendance

import "errors"

// Attendance domain errors
var (
	// Scan errors
	ErrScanCooldown   = errors.New("duplicate scan, please wait before scanning again")
	ErrScanInProgress = errors.New("another scan for this employee is being processed")
	ErrDuplicateScan  = errors.New("duplicate scan, punch already recorded")
	ErrPunchSlotTaken = errors.New("punch for this slot has already been recorded today")

	// General errors
	ErrInvalidPunchType = errors.New("invalid punch type")
)

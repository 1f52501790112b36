package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrEmptySchedule    = errors.New("at least one schedule entry is required")
)

package attendance

import "context"

// AttendanceLogRepository stores punches. Logs are never updated or deleted.
type AttendanceLogRepository interface {
	// Create returns ErrPunchSlotTaken when the employee already has a punch
	// of the same type on the same date.
	Create(ctx context.Context, log AttendanceLog) (AttendanceLog, error)

	// ListByEmployeeAndDate returns a day's punches ordered by timestamp.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date string) ([]AttendanceLog, error)

	// ListByEmployeeAndRange returns punches with start <= date <= end ordered by timestamp.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end string) ([]AttendanceLog, error)
}

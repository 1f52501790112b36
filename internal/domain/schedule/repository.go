package schedule

import "context"

// ScheduleRepository persists per-day schedules.
type ScheduleRepository interface {
	// Upsert inserts or replaces schedules keyed on (employee_id, date).
	Upsert(ctx context.Context, schedules []Schedule) ([]Schedule, error)

	// GetByEmployeeAndDate returns ErrScheduleNotFound when no shift is set.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (Schedule, error)

	// ListByEmployeeAndRange returns schedules with start <= date <= end, ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end string) ([]Schedule, error)

	// ListUpcoming returns schedules on or after fromDate, ordered by date.
	ListUpcoming(ctx context.Context, employeeID string, fromDate string, limit int) ([]Schedule, error)
}

package schedule

import "context"

type ScheduleService interface {
	SetSchedules(ctx context.Context, req UpsertSchedulesRequest) ([]ScheduleResponse, error)
	ListMonth(ctx context.Context, req ListMonthRequest) ([]ScheduleResponse, error)
	ListUpcoming(ctx context.Context, employeeID string) ([]ScheduleResponse, error)
}

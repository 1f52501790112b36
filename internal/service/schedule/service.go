package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
)

type scheduleServiceImpl struct {
	scheduleRepo schedule.ScheduleRepository
	employeeRepo employee.EmployeeRepository
	clock        *civiltime.Clock
}

func NewScheduleService(
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	clock *civiltime.Clock,
) schedule.ScheduleService {
	return &scheduleServiceImpl{
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		clock:        clock,
	}
}

// SetSchedules implements schedule.ScheduleService.
func (s *scheduleServiceImpl) SetSchedules(ctx context.Context, req schedule.UpsertSchedulesRequest) ([]schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	checked := make(map[string]bool)
	entities := make([]schedule.Schedule, 0, len(req.Schedules))
	for _, entry := range req.Schedules {
		if !checked[entry.EmployeeID] {
			if _, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID); err != nil {
				return nil, fmt.Errorf("%s: %w", entry.EmployeeID, err)
			}
			checked[entry.EmployeeID] = true
		}

		// formats were checked by Validate
		start, _ := civiltime.ParseTimeOfDay(entry.StartTime)
		end, _ := civiltime.ParseTimeOfDay(entry.EndTime)
		entities = append(entities, schedule.Schedule{
			EmployeeID: entry.EmployeeID,
			Date:       entry.Date,
			StartTime:  start,
			EndTime:    end,
		})
	}

	saved, err := s.scheduleRepo.Upsert(ctx, entities)
	if err != nil {
		return nil, fmt.Errorf("failed to save schedules: %w", err)
	}

	slog.Info("Schedules saved", "count", len(saved), "employees", len(checked))
	return toResponses(saved), nil
}

// ListMonth implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ListMonth(ctx context.Context, req schedule.ListMonthRequest) ([]schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	first, _ := civiltime.ParseMonth(req.Month)
	last := first.AddDate(0, 1, -1)

	schedules, err := s.scheduleRepo.ListByEmployeeAndRange(ctx, req.EmployeeID,
		civiltime.FormatDate(first), civiltime.FormatDate(last))
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return toResponses(schedules), nil
}

// ListUpcoming implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ListUpcoming(ctx context.Context, employeeID string) ([]schedule.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.ListUpcoming(ctx, employeeID, s.clock.Today(), schedule.UpcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming schedules: %w", err)
	}
	return toResponses(schedules), nil
}

func toResponses(schedules []schedule.Schedule) []schedule.ScheduleResponse {
	out := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sc := range schedules {
		out = append(out, schedule.ToResponse(sc))
	}
	return out
}

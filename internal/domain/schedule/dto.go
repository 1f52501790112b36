package schedule

import (
	"fmt"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/validator"
)

type ScheduleEntry struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`       // YYYY-MM-DD
	StartTime  string `json:"start_time"` // HH:mm
	EndTime    string `json:"end_time"`   // HH:mm
}

type UpsertSchedulesRequest struct {
	Schedules []ScheduleEntry `json:"schedules"`
}

func (r *UpsertSchedulesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Schedules) == 0 {
		errs.Add("schedules", ErrEmptySchedule.Error())
		return errs
	}

	for i, s := range r.Schedules {
		prefix := fmt.Sprintf("schedules[%d]", i)
		if !validator.IsValidEmployeeID(s.EmployeeID) {
			errs.Add(prefix+".employee_id", "employee_id is invalid")
		}
		if !validator.IsValidDate(s.Date) {
			errs.Add(prefix+".date", "date must be in YYYY-MM-DD format")
		}
		if !validator.IsValidTimeOfDay(s.StartTime) {
			errs.Add(prefix+".start_time", "start_time must be in HH:mm format")
		}
		if !validator.IsValidTimeOfDay(s.EndTime) {
			errs.Add(prefix+".end_time", "end_time must be in HH:mm format")
		}
	}

	return errs.Err()
}

type ListMonthRequest struct {
	EmployeeID string
	Month      string // YYYY-MM
}

func (r *ListMonthRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is invalid")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be in YYYY-MM format")
	}
	return errs.Err()
}

type ScheduleResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	StartTimeDisplay string `json:"start_time_display"`
	EndTimeDisplay   string `json:"end_time_display"`
}

// ToResponse renders a schedule for the API.
func ToResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:               s.ID,
		EmployeeID:       s.EmployeeID,
		Date:             s.Date,
		StartTime:        s.StartTime.String(),
		EndTime:          s.EndTime.String(),
		StartTimeDisplay: s.StartTime.Format12h(),
		EndTimeDisplay:   s.EndTime.Format12h(),
	}
}

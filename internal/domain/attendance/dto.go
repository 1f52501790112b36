package attendance

import (
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/validator"
)

// ========================================
// SCAN DTOs
// ========================================

type ScanRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is invalid")
	}
	return errs.Err()
}

type ScanResponse struct {
	LogID        string    `json:"log_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Branch       string    `json:"branch"`
	Type         PunchType `json:"type"`
	Date         string    `json:"date"`
	Timestamp    time.Time `json:"timestamp"`
	TimeDisplay  string    `json:"time_display"`
}

// ========================================
// DTR DTOs
// ========================================

type DTRRequest struct {
	EmployeeID string
	Month      string // YYYY-MM
	Period     string // 1-15 | 16-END
}

func (r *DTRRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is invalid")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be in YYYY-MM format")
	}
	if !validator.IsInSlice(r.Period, period.HalfValues) {
		errs.Add("period", period.ErrInvalidHalf.Error())
	}
	return errs.Err()
}

// DayRequest addresses one employee on one civil date.
type DayRequest struct {
	EmployeeID string
	Date       string // YYYY-MM-DD
}

func (r *DayRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is invalid")
	}
	if !validator.IsValidDate(r.Date) {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	return errs.Err()
}

type DailyRecordResponse struct {
	Date             string           `json:"date"`
	AMIn             *time.Time       `json:"am_in"`
	AMOut            *time.Time       `json:"am_out"`
	PMIn             *time.Time       `json:"pm_in"`
	PMOut            *time.Time       `json:"pm_out"`
	AMInDisplay      string           `json:"am_in_display"`
	AMOutDisplay     string           `json:"am_out_display"`
	PMInDisplay      string           `json:"pm_in_display"`
	PMOutDisplay     string           `json:"pm_out_display"`
	Status           DayStatus        `json:"status"`
	ArrivalStatus    *ArrivalStatus   `json:"arrival_status"`
	DepartureStatus  *DepartureStatus `json:"departure_status"`
	LateMinutes      int              `json:"late_minutes"`
	UndertimeMinutes int              `json:"undertime_minutes"`
	HoursWorked      float64          `json:"hours_worked"`
}

// ToDailyRecordResponse renders clock columns in the civil zone of c.
func ToDailyRecordResponse(rec DailyRecord, c *civiltime.Clock) DailyRecordResponse {
	return DailyRecordResponse{
		Date:             rec.Date,
		AMIn:             rec.AMIn,
		AMOut:            rec.AMOut,
		PMIn:             rec.PMIn,
		PMOut:            rec.PMOut,
		AMInDisplay:      c.FormatClock(rec.AMIn),
		AMOutDisplay:     c.FormatClock(rec.AMOut),
		PMInDisplay:      c.FormatClock(rec.PMIn),
		PMOutDisplay:     c.FormatClock(rec.PMOut),
		Status:           rec.Status,
		ArrivalStatus:    rec.ArrivalStatus,
		DepartureStatus:  rec.DepartureStatus,
		LateMinutes:      rec.LateMinutes,
		UndertimeMinutes: rec.UndertimeMinutes,
		HoursWorked:      rec.HoursWorked,
	}
}

type DTRSummary struct {
	DaysPresent           int     `json:"days_present"`
	DaysIncomplete        int     `json:"days_incomplete"`
	DaysAbsent            int     `json:"days_absent"`
	TotalLateMinutes      int     `json:"total_late_minutes"`
	TotalUndertimeMinutes int     `json:"total_undertime_minutes"`
	TotalHoursWorked      float64 `json:"total_hours_worked"`
}

type DTRResponse struct {
	EmployeeID   string                `json:"employee_id"`
	EmployeeName string                `json:"employee_name"`
	Month        string                `json:"month"`
	Period       string                `json:"period"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	Records      []DailyRecordResponse `json:"records"`
	Summary      DTRSummary            `json:"summary"`
}

// Summarize totals a run of daily records.
func Summarize(records []DailyRecord) DTRSummary {
	var s DTRSummary
	for _, r := range records {
		switch r.Status {
		case DayPresent:
			s.DaysPresent++
		case DayIncomplete:
			s.DaysIncomplete++
		default:
			s.DaysAbsent++
		}
		s.TotalLateMinutes += r.LateMinutes
		s.TotalUndertimeMinutes += r.UndertimeMinutes
		s.TotalHoursWorked += r.HoursWorked
	}
	return s
}

type LogResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Date        string    `json:"date"`
	Type        PunchType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	TimeDisplay string    `json:"time_display"`
}

func ToLogResponse(l AttendanceLog, c *civiltime.Clock) LogResponse {
	ts := l.Timestamp
	return LogResponse{
		ID:          l.ID,
		EmployeeID:  l.EmployeeID,
		Date:        l.Date,
		Type:        l.Type,
		Timestamp:   l.Timestamp,
		TimeDisplay: c.FormatClock(&ts),
	}
}

package attendance

import (
	"time"
)

// PunchType is one of the four daily slots a scan can fill.
type PunchType string

const (
	PunchAMIn  PunchType = "AM_IN"
	PunchAMOut PunchType = "AM_OUT"
	PunchPMIn  PunchType = "PM_IN"
	PunchPMOut PunchType = "PM_OUT"
)

var PunchTypeValues = []string{
	string(PunchAMIn),
	string(PunchAMOut),
	string(PunchPMIn),
	string(PunchPMOut),
}

// AttendanceLog is a single punch. Logs are append-only.
type AttendanceLog struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time // absolute instant
	Date       string    // civil date the punch is attributed to, YYYY-MM-DD
	Type       PunchType
	CreatedAt  time.Time
}

type DayStatus string

const (
	DayPresent    DayStatus = "PRESENT"
	DayIncomplete DayStatus = "INCOMPLETE"
	DayAbsent     DayStatus = "ABSENT"
)

// Counted reports whether the day earns a daily rate.
func (s DayStatus) Counted() bool {
	return s == DayPresent || s == DayIncomplete
}

type ArrivalStatus string

const (
	ArrivalEarly  ArrivalStatus = "EARLY"
	ArrivalOnTime ArrivalStatus = "ON_TIME"
	ArrivalLate   ArrivalStatus = "LATE"
)

// There is no overtime status: leaving late is ON_TIME.
type DepartureStatus string

const (
	DepartureUnderTime DepartureStatus = "UNDER_TIME"
	DepartureOnTime    DepartureStatus = "ON_TIME"
)

// DailyRecord is derived from one day's punches and schedule. It is never
// stored.
type DailyRecord struct {
	Date             string
	AMIn             *time.Time
	AMOut            *time.Time
	PMIn             *time.Time
	PMOut            *time.Time
	Status           DayStatus
	ArrivalStatus    *ArrivalStatus   // nil without schedule or AM_IN
	DepartureStatus  *DepartureStatus // nil without schedule or PM_OUT
	LateMinutes      int
	UndertimeMinutes int
	HoursWorked      float64
}

const (
	// ArrivalToleranceMinutes classifies arrival as EARLY/ON_TIME/LATE. It is
	// not the payroll grace period.
	ArrivalToleranceMinutes = 15

	// LunchBreak is always deducted from a worked span.
	LunchBreak = time.Hour

	// Break window used by the classifier when a schedule is known.
	BreakOffsetFromStart = 4 * time.Hour
	BreakLength          = time.Hour
)

// Default break window without a schedule, minutes since civil midnight.
const (
	DefaultBreakStartMinutes = 12 * 60
	DefaultBreakEndMinutes   = 13 * 60
)

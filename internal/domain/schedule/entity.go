package schedule

import (
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
)

// Schedule is the shift of one employee on one civil date. There is at most
// one per (employee, date); a new one replaces the old.
type Schedule struct {
	ID         string
	EmployeeID string
	Date       string // YYYY-MM-DD
	StartTime  civiltime.TimeOfDay
	EndTime    civiltime.TimeOfDay
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UpcomingLimit caps the schedules returned to an employee's own view.
const UpcomingLimit = 20

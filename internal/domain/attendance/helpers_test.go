package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
	"github.com/stretchr/testify/require"
)

const testDate = "2024-03-11"

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(civiltime.DefaultTimezone)
	require.NoError(t, err)
	return loc
}

// at returns testDate at hh:mm in loc.
func at(t *testing.T, loc *time.Location, hhmm string) time.Time {
	t.Helper()
	day, err := civiltime.ParseDate(testDate)
	require.NoError(t, err)
	tod, err := civiltime.ParseTimeOfDay(hhmm)
	require.NoError(t, err)
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour, tod.Minute, 0, 0, loc)
}

func punch(t *testing.T, loc *time.Location, typ PunchType, hhmm string) AttendanceLog {
	t.Helper()
	return AttendanceLog{
		ID:         string(typ) + "@" + hhmm,
		EmployeeID: "EMP-001",
		Timestamp:  at(t, loc, hhmm),
		Date:       testDate,
		Type:       typ,
	}
}

func shift(start, end string) *schedule.Schedule {
	return &schedule.Schedule{
		EmployeeID: "EMP-001",
		Date:       testDate,
		StartTime:  civiltime.MustTimeOfDay(start),
		EndTime:    civiltime.MustTimeOfDay(end),
	}
}

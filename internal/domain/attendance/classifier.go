package attendance

import (
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
)

// Classify decides which slot the next scan fills, given the punches already
// recorded for the employee today, the scan instant and today's schedule
// (nil when none is set). Time of day is read in loc.
//
// The slot order AM_IN -> AM_OUT -> PM_IN -> PM_OUT is re-derived from the
// punches on every call. An employee who never clocked in for the morning
// goes straight to PM_IN once the break window has ended.
func Classify(todays []AttendanceLog, now time.Time, sched *schedule.Schedule, loc *time.Location) PunchType {
	var hasAMIn, hasAMOut, hasPMIn bool
	for _, l := range todays {
		switch l.Type {
		case PunchAMIn:
			hasAMIn = true
		case PunchAMOut:
			hasAMOut = true
		case PunchPMIn:
			hasPMIn = true
		}
	}

	_, breakEnd := BreakWindow(sched)
	nowMinutes := civiltime.MinutesOfDay(now, loc)

	switch {
	case hasPMIn:
		return PunchPMOut
	case (hasAMIn && hasAMOut) || (!hasAMIn && nowMinutes >= breakEnd):
		return PunchPMIn
	case hasAMIn && !hasAMOut:
		return PunchAMOut
	default:
		return PunchAMIn
	}
}

// BreakWindow returns the lunch break as minutes since civil midnight. With a
// schedule it starts four hours after the shift start and lasts one hour;
// otherwise it is 12:00-13:00. The end may exceed a day for late shifts.
func BreakWindow(sched *schedule.Schedule) (start, end int) {
	if sched == nil {
		return DefaultBreakStartMinutes, DefaultBreakEndMinutes
	}
	start = sched.StartTime.Minutes() + int(BreakOffsetFromStart/time.Minute)
	end = start + int(BreakLength/time.Minute)
	return start, end
}

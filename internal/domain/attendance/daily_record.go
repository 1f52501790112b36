package attendance

import (
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
)

// ComputeDailyRecord derives the attendance record of one civil date from the
// employee's punches and that day's schedule (nil when none is set).
//
// Logs for other dates are ignored. When a slot was punched more than once
// the first log in the given order wins; storage keeps slots unique.
func ComputeDailyRecord(date string, logs []AttendanceLog, sched *schedule.Schedule, loc *time.Location) DailyRecord {
	rec := DailyRecord{Date: date}

	for _, l := range logs {
		if l.Date != date {
			continue
		}
		ts := l.Timestamp
		switch l.Type {
		case PunchAMIn:
			if rec.AMIn == nil {
				rec.AMIn = &ts
			}
		case PunchAMOut:
			if rec.AMOut == nil {
				rec.AMOut = &ts
			}
		case PunchPMIn:
			if rec.PMIn == nil {
				rec.PMIn = &ts
			}
		case PunchPMOut:
			if rec.PMOut == nil {
				rec.PMOut = &ts
			}
		}
	}

	switch {
	case rec.AMIn != nil && rec.AMOut != nil && rec.PMIn != nil && rec.PMOut != nil:
		rec.Status = DayPresent
	case rec.AMIn != nil || rec.PMIn != nil:
		rec.Status = DayIncomplete
	default:
		rec.Status = DayAbsent
	}

	if sched != nil && rec.AMIn != nil {
		diff := civiltime.MinutesOfDay(*rec.AMIn, loc) - sched.StartTime.Minutes()
		var arrival ArrivalStatus
		switch {
		case diff < -ArrivalToleranceMinutes:
			arrival = ArrivalEarly
		case diff > ArrivalToleranceMinutes:
			arrival = ArrivalLate
			rec.LateMinutes = diff
		default:
			arrival = ArrivalOnTime
		}
		rec.ArrivalStatus = &arrival
	}

	if sched != nil && rec.PMOut != nil {
		departure := civiltime.MinutesOfDay(*rec.PMOut, loc)
		schedEnd := sched.EndTime.Minutes()
		status := DepartureOnTime
		if departure < schedEnd {
			status = DepartureUnderTime
			rec.UndertimeMinutes = schedEnd - departure
		}
		rec.DepartureStatus = &status
	}

	if rec.AMIn != nil && rec.PMOut != nil {
		end := *rec.PMOut
		if sched != nil {
			// no credit for staying past the scheduled end
			scheduledEnd := sched.EndTime.On(end, loc)
			if end.After(scheduledEnd) {
				end = scheduledEnd
			}
		}
		hours := end.Sub(*rec.AMIn).Hours() - LunchBreak.Hours()
		if hours < 0 {
			hours = 0
		}
		rec.HoursWorked = hours
	}

	return rec
}

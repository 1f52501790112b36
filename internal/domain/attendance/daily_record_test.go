package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullDay(t *testing.T, amIn, pmOut string) []AttendanceLog {
	loc := testLocation(t)
	return []AttendanceLog{
		punch(t, loc, PunchAMIn, amIn),
		punch(t, loc, PunchAMOut, "12:00"),
		punch(t, loc, PunchPMIn, "13:00"),
		punch(t, loc, PunchPMOut, pmOut),
	}
}

func TestComputeDailyRecord_Status(t *testing.T) {
	loc := testLocation(t)

	rec := ComputeDailyRecord(testDate, fullDay(t, "08:00", "17:00"), nil, loc)
	assert.Equal(t, DayPresent, rec.Status)

	rec = ComputeDailyRecord(testDate, []AttendanceLog{punch(t, loc, PunchAMIn, "08:00")}, nil, loc)
	assert.Equal(t, DayIncomplete, rec.Status)

	rec = ComputeDailyRecord(testDate, []AttendanceLog{punch(t, loc, PunchPMIn, "13:00")}, nil, loc)
	assert.Equal(t, DayIncomplete, rec.Status)

	rec = ComputeDailyRecord(testDate, nil, nil, loc)
	assert.Equal(t, DayAbsent, rec.Status)
	assert.Nil(t, rec.ArrivalStatus)
	assert.Nil(t, rec.DepartureStatus)
	assert.Zero(t, rec.HoursWorked)
}

func TestComputeDailyRecord_ArrivalBoundaries(t *testing.T) {
	loc := testLocation(t)
	sched := shift("08:00", "17:00")

	cases := []struct {
		amIn string
		want ArrivalStatus
		late int
	}{
		{"07:44", ArrivalEarly, 0},
		{"07:45", ArrivalOnTime, 0},
		{"08:00", ArrivalOnTime, 0},
		{"08:15", ArrivalOnTime, 0},
		{"08:16", ArrivalLate, 16},
		{"09:30", ArrivalLate, 90},
	}
	for _, c := range cases {
		logs := []AttendanceLog{punch(t, loc, PunchAMIn, c.amIn)}
		rec := ComputeDailyRecord(testDate, logs, sched, loc)
		require.NotNil(t, rec.ArrivalStatus, c.amIn)
		assert.Equal(t, c.want, *rec.ArrivalStatus, c.amIn)
		assert.Equal(t, c.late, rec.LateMinutes, c.amIn)
	}
}

func TestComputeDailyRecord_Undertime(t *testing.T) {
	loc := testLocation(t)
	sched := shift("08:00", "17:00")

	rec := ComputeDailyRecord(testDate, fullDay(t, "08:00", "16:59"), sched, loc)
	require.NotNil(t, rec.DepartureStatus)
	assert.Equal(t, DepartureUnderTime, *rec.DepartureStatus)
	assert.Equal(t, 1, rec.UndertimeMinutes)

	for _, out := range []string{"17:00", "18:30"} {
		rec = ComputeDailyRecord(testDate, fullDay(t, "08:00", out), sched, loc)
		require.NotNil(t, rec.DepartureStatus, out)
		assert.Equal(t, DepartureOnTime, *rec.DepartureStatus, out)
		assert.Zero(t, rec.UndertimeMinutes, out)
	}
}

func TestComputeDailyRecord_NoScheduleNoStatuses(t *testing.T) {
	loc := testLocation(t)
	rec := ComputeDailyRecord(testDate, fullDay(t, "09:30", "16:00"), nil, loc)

	assert.Nil(t, rec.ArrivalStatus)
	assert.Nil(t, rec.DepartureStatus)
	assert.Zero(t, rec.LateMinutes)
	assert.Zero(t, rec.UndertimeMinutes)
}

func TestComputeDailyRecord_HoursCappedAtScheduledEnd(t *testing.T) {
	loc := testLocation(t)
	logs := fullDay(t, "08:00", "19:00")

	rec := ComputeDailyRecord(testDate, logs, shift("08:00", "17:00"), loc)
	assert.InDelta(t, 8.0, rec.HoursWorked, 1e-9)

	rec = ComputeDailyRecord(testDate, logs, nil, loc)
	assert.InDelta(t, 10.0, rec.HoursWorked, 1e-9)
}

func TestComputeDailyRecord_HoursNeverNegative(t *testing.T) {
	loc := testLocation(t)
	logs := []AttendanceLog{
		punch(t, loc, PunchAMIn, "08:00"),
		punch(t, loc, PunchPMOut, "08:30"),
	}
	rec := ComputeDailyRecord(testDate, logs, nil, loc)
	assert.Zero(t, rec.HoursWorked)
}

func TestComputeDailyRecord_HoursNeedBothEnds(t *testing.T) {
	loc := testLocation(t)
	logs := []AttendanceLog{
		punch(t, loc, PunchAMIn, "08:00"),
		punch(t, loc, PunchAMOut, "12:00"),
	}
	rec := ComputeDailyRecord(testDate, logs, nil, loc)
	assert.Zero(t, rec.HoursWorked)
}

func TestComputeDailyRecord_IgnoresOtherDates(t *testing.T) {
	loc := testLocation(t)
	other := punch(t, loc, PunchAMIn, "08:00")
	other.Date = "2024-03-10"

	rec := ComputeDailyRecord(testDate, []AttendanceLog{other}, nil, loc)
	assert.Equal(t, DayAbsent, rec.Status)
	assert.Nil(t, rec.AMIn)
}

func TestComputeDailyRecord_FirstPunchPerSlotWins(t *testing.T) {
	loc := testLocation(t)
	logs := []AttendanceLog{
		punch(t, loc, PunchAMIn, "08:05"),
		punch(t, loc, PunchAMIn, "08:40"),
	}
	rec := ComputeDailyRecord(testDate, logs, shift("08:00", "17:00"), loc)
	require.NotNil(t, rec.AMIn)
	assert.True(t, rec.AMIn.Equal(at(t, loc, "08:05")))
	assert.Equal(t, ArrivalOnTime, *rec.ArrivalStatus)
}

func TestComputeDailyRecord_Idempotent(t *testing.T) {
	loc := testLocation(t)
	logs := fullDay(t, "08:20", "16:45")
	sched := shift("08:00", "17:00")

	first := ComputeDailyRecord(testDate, logs, sched, loc)
	second := ComputeDailyRecord(testDate, logs, sched, loc)
	assert.Equal(t, first, second)
}

package civiltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manila(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	return loc
}

func TestNewClock_DefaultsToManila(t *testing.T) {
	c, err := NewClock("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimezone, c.Location().String())
}

func TestNewClock_InvalidZone(t *testing.T) {
	_, err := NewClock("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestLocalDate_CrossesUTCMidnight(t *testing.T) {
	c := NewFixedClock(manila(t), time.Time{})

	// 17:30 UTC is already 01:30 the next day in Manila.
	instant := time.Date(2024, 3, 9, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-10", c.LocalDate(instant))

	// 15:59 UTC is still 23:59 the same day.
	instant = time.Date(2024, 3, 9, 15, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09", c.LocalDate(instant))
}

func TestLocalDate_IgnoresSourceOffset(t *testing.T) {
	c := NewFixedClock(manila(t), time.Time{})
	ny := time.FixedZone("EST", -5*3600)

	// 2024-03-09 20:00 EST == 2024-03-10 09:00 PHT
	instant := time.Date(2024, 3, 9, 20, 0, 0, 0, ny)
	assert.Equal(t, "2024-03-10", c.LocalDate(instant))
}

func TestLocalNow(t *testing.T) {
	fixed := time.Date(2024, 3, 9, 23, 5, 0, 0, time.UTC)
	c := NewFixedClock(manila(t), fixed)

	now := c.LocalNow()
	assert.Equal(t, 7, now.Hour())
	assert.Equal(t, 5, now.Minute())
	assert.Equal(t, 10, now.Day())
	assert.True(t, now.Equal(fixed))
	assert.Equal(t, "2024-03-10", c.Today())
}

func TestFormatClock(t *testing.T) {
	c := NewFixedClock(manila(t), time.Time{})

	assert.Equal(t, "--:--", c.FormatClock(nil))

	morning := time.Date(2024, 3, 10, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, "8:05 AM", c.FormatClock(&morning))

	afternoon := time.Date(2024, 3, 10, 5, 30, 0, 0, time.UTC)
	assert.Equal(t, "1:30 PM", c.FormatClock(&afternoon))

	midnight := time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, "12:00 AM", c.FormatClock(&midnight))
}

func TestFormatTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"13:00", "1:00 PM"},
		{"00:15", "12:15 AM"},
		{"12:00", "12:00 PM"},
		{"08:05", "8:05 AM"},
		{"8:05", "8:05 AM"},
		{"23:59", "11:59 PM"},
	}
	for _, c := range cases {
		got, err := FormatTimeOfDay(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestFormatTimeOfDay_RejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "25:00", "12:60", "12-00", "12:0"} {
		_, err := FormatTimeOfDay(in)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, in)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	for _, in := range []string{"2023-02-29", "2024/01/01", "01-01-2024", ""} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrInvalidDate, in)
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-12")
	require.NoError(t, err)
	assert.Equal(t, 2024, m.Year())
	assert.Equal(t, time.December, m.Month())

	_, err = ParseMonth("2024-13")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestMinutesOfDay_TruncatesSeconds(t *testing.T) {
	loc := manila(t)
	instant := time.Date(2024, 3, 10, 8, 15, 59, 0, loc)
	assert.Equal(t, 8*60+15, MinutesOfDay(instant, loc))
}

func TestTimeOfDay_On(t *testing.T) {
	loc := manila(t)
	day := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC) // 04:00 on the 10th in Manila
	got := MustTimeOfDay("17:00").On(day, loc)
	assert.Equal(t, time.Date(2024, 3, 10, 17, 0, 0, 0, loc), got)
	assert.Equal(t, "17:00", MustTimeOfDay("17:00").String())
}

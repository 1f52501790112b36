// Package civiltime converts absolute instants into the wall-clock dates and
// times of a single configured civil timezone.
package civiltime

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // Asia/Manila must resolve on hosts without zoneinfo
)

// DefaultTimezone is Philippine Standard Time (UTC+8, no daylight saving).
const DefaultTimezone = "Asia/Manila"

const (
	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
	TimeOfDayLayout = "15:04"
	clockLayout     = "3:04 PM"
	emptyClock      = "--:--"
)

var (
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth     = errors.New("invalid month, expected YYYY-MM")
	ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:mm")
	ErrInvalidTimezone  = errors.New("invalid timezone")
)

// Clock resolves "now" and formats instants in a fixed civil timezone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock loads the IANA zone tz. An empty tz selects DefaultTimezone.
func NewClock(tz string) (*Clock, error) {
	if strings.TrimSpace(tz) == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTimezone, tz, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewFixedClock returns a clock whose now is always t. Used by tests and replays.
func NewFixedClock(loc *time.Location, t time.Time) *Clock {
	return NewClockFunc(loc, func() time.Time { return t })
}

// NewClockFunc returns a clock reading the current instant from now.
func NewClockFunc(loc *time.Location, now func() time.Time) *Clock {
	return &Clock{loc: loc, now: now}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current absolute instant.
func (c *Clock) Now() time.Time {
	return c.now()
}

// LocalNow returns now expressed as wall-clock values in the civil zone.
func (c *Clock) LocalNow() time.Time {
	return c.now().In(c.loc)
}

// LocalDate renders instant as YYYY-MM-DD in the civil zone.
func (c *Clock) LocalDate(instant time.Time) string {
	return instant.In(c.loc).Format(DateLayout)
}

// Today is LocalDate(Now()).
func (c *Clock) Today() string {
	return c.LocalDate(c.now())
}

// FormatClock renders "--:--" for nil, otherwise "h:mm AM/PM" in the civil zone.
func (c *Clock) FormatClock(instant *time.Time) string {
	if instant == nil {
		return emptyClock
	}
	return instant.In(c.loc).Format(clockLayout)
}

// MinutesOfDay returns the minutes since civil midnight of instant in loc.
// Seconds are truncated.
func MinutesOfDay(instant time.Time, loc *time.Location) int {
	local := instant.In(loc)
	return local.Hour()*60 + local.Minute()
}

// ParseDate parses a civil YYYY-MM-DD date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseMonth parses YYYY-MM into the first of that month, midnight UTC.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t, nil
}

// FormatDate renders a civil date value as YYYY-MM-DD without zone conversion.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

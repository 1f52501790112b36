// Package period models the semi-monthly payroll window.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
)

// Half selects one of the two payroll windows of a month.
type Half string

const (
	FirstHalf  Half = "1-15"
	SecondHalf Half = "16-END"
)

var HalfValues = []string{string(FirstHalf), string(SecondHalf)}

var ErrInvalidHalf = errors.New("period must be one of: 1-15, 16-END")

// Period is an inclusive range of civil dates, both at midnight UTC.
type Period struct {
	Start time.Time
	End   time.Time
	Half  Half
}

// New builds the period for month (YYYY-MM) and half. The second half runs
// from the 16th to the last day of the month.
func New(month string, half Half) (Period, error) {
	first, err := civiltime.ParseMonth(month)
	if err != nil {
		return Period{}, err
	}
	switch half {
	case FirstHalf:
		return Period{
			Start: first,
			End:   first.AddDate(0, 0, 14),
			Half:  half,
		}, nil
	case SecondHalf:
		return Period{
			Start: first.AddDate(0, 0, 15),
			End:   first.AddDate(0, 1, -1),
			Half:  half,
		}, nil
	default:
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidHalf, half)
	}
}

// Containing returns the period that holds the civil date d.
func Containing(d time.Time) Period {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	if d.Day() <= 15 {
		return Period{Start: first, End: first.AddDate(0, 0, 14), Half: FirstHalf}
	}
	return Period{Start: first.AddDate(0, 0, 15), End: first.AddDate(0, 1, -1), Half: SecondHalf}
}

// IsSecondHalf reports whether monthly allowances apply to this period.
func (p Period) IsSecondHalf() bool {
	return p.Half == SecondHalf
}

// Days lists every civil date of the period as YYYY-MM-DD.
func (p Period) Days() []string {
	var days []string
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, civiltime.FormatDate(d))
	}
	return days
}

func (p Period) StartDate() string {
	return civiltime.FormatDate(p.Start)
}

func (p Period) EndDate() string {
	return civiltime.FormatDate(p.End)
}

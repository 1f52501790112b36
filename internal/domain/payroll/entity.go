package payroll

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config is the single payroll configuration of the business.
type Config struct {
	ID string

	// Daily rates keyed by RateKey(position, branch).
	Rates map[string]decimal.Decimal

	// Lateness at or under the grace period is not deducted.
	GracePeriodMinutes int

	// Charged per late minute (over grace) and per undertime minute.
	LateDeductionPerMinute decimal.Decimal

	MealAllowance   decimal.Decimal
	BirthMonthBonus decimal.Decimal

	Positions                      []string
	Branches                       []string
	MealAllowanceEligiblePositions []string

	UpdatedAt time.Time
}

// DefaultConfig is used until an administrator saves a configuration.
func DefaultConfig() Config {
	return Config{
		Rates:                          map[string]decimal.Decimal{},
		GracePeriodMinutes:             15,
		LateDeductionPerMinute:         decimal.NewFromInt(5),
		MealAllowance:                  decimal.NewFromInt(100),
		BirthMonthBonus:                decimal.NewFromInt(1000),
		Positions:                      []string{"Branch Manager", "Team Leader", "Regular Staff"},
		Branches:                       []string{"Cabanatuan", "Solano"},
		MealAllowanceEligiblePositions: []string{"Branch Manager", "Team Leader"},
	}
}

// Clone returns a deep copy so callers can modify the result freely.
func (c Config) Clone() Config {
	out := c
	out.Rates = maps.Clone(c.Rates)
	if out.Rates == nil {
		out.Rates = map[string]decimal.Decimal{}
	}
	out.Positions = slices.Clone(c.Positions)
	out.Branches = slices.Clone(c.Branches)
	out.MealAllowanceEligiblePositions = slices.Clone(c.MealAllowanceEligiblePositions)
	return out
}

func (c Config) HasPosition(position string) bool {
	return slices.Contains(c.Positions, position)
}

func (c Config) HasBranch(branch string) bool {
	return slices.Contains(c.Branches, branch)
}

func (c Config) MealEligible(position string) bool {
	return slices.Contains(c.MealAllowanceEligiblePositions, position)
}

const rateKeySeparator = "|"

// RateKey builds the key of Config.Rates, e.g. "Team Leader|Solano".
func RateKey(position, branch string) string {
	return position + rateKeySeparator + branch
}

// SplitRateKey is the inverse of RateKey.
func SplitRateKey(key string) (position, branch string, ok bool) {
	position, branch, ok = strings.Cut(key, rateKeySeparator)
	if !ok || position == "" || branch == "" {
		return "", "", false
	}
	return position, branch, true
}

type RateSource string

const (
	RateSourceConfigured RateSource = "CONFIGURED"
	RateSourceDefaulted  RateSource = "DEFAULTED"
)

// RateResolution is the outcome of a daily rate lookup. A missing rate
// resolves to zero with RateSourceDefaulted.
type RateResolution struct {
	Key    string
	Rate   decimal.Decimal
	Source RateSource
}

func (r RateResolution) Defaulted() bool {
	return r.Source == RateSourceDefaulted
}

func (c Config) ResolveRate(position, branch string) RateResolution {
	key := RateKey(position, branch)
	if rate, ok := c.Rates[key]; ok {
		return RateResolution{Key: key, Rate: rate, Source: RateSourceConfigured}
	}
	return RateResolution{Key: key, Rate: decimal.Zero, Source: RateSourceDefaulted}
}

// SalarySlip is the pay computed for one employee over one period.
type SalarySlip struct {
	EmployeeID         string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	PayoutDate         time.Time
	DailyRateUsed      decimal.Decimal
	RateSource         RateSource
	BasePay            decimal.Decimal
	LateDeduction      decimal.Decimal
	UndertimeDeduction decimal.Decimal
	MealAllowance      decimal.Decimal
	BirthMonthBonus    decimal.Decimal
	NetPay             decimal.Decimal
	DaysPresent        int
}

package payroll

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CONFIG DTOs ==========

type ConfigResponse struct {
	Rates                          map[string]decimal.Decimal `json:"rates"`
	GracePeriodMinutes             int                        `json:"grace_period_minutes"`
	LateDeductionPerMinute         decimal.Decimal            `json:"late_deduction_per_minute"`
	MealAllowance                  decimal.Decimal            `json:"meal_allowance"`
	BirthMonthBonus                decimal.Decimal            `json:"birth_month_bonus"`
	Positions                      []string                   `json:"positions"`
	Branches                       []string                   `json:"branches"`
	MealAllowanceEligiblePositions []string                   `json:"meal_allowance_eligible_positions"`
	UpdatedAt                      *time.Time                 `json:"updated_at,omitempty"`
}

func ToConfigResponse(c Config) ConfigResponse {
	resp := ConfigResponse{
		Rates:                          c.Rates,
		GracePeriodMinutes:             c.GracePeriodMinutes,
		LateDeductionPerMinute:         c.LateDeductionPerMinute,
		MealAllowance:                  c.MealAllowance,
		BirthMonthBonus:                c.BirthMonthBonus,
		Positions:                      c.Positions,
		Branches:                       c.Branches,
		MealAllowanceEligiblePositions: c.MealAllowanceEligiblePositions,
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// UpdateConfigRequest replaces only the fields that are present. Rates, when
// present, replaces the whole rate table.
type UpdateConfigRequest struct {
	Rates                          map[string]decimal.Decimal `json:"rates,omitempty"`
	GracePeriodMinutes             *int                       `json:"grace_period_minutes,omitempty"`
	LateDeductionPerMinute         *decimal.Decimal           `json:"late_deduction_per_minute,omitempty"`
	MealAllowance                  *decimal.Decimal           `json:"meal_allowance,omitempty"`
	BirthMonthBonus                *decimal.Decimal           `json:"birth_month_bonus,omitempty"`
	Positions                      []string                   `json:"positions,omitempty"`
	Branches                       []string                   `json:"branches,omitempty"`
	MealAllowanceEligiblePositions []string                   `json:"meal_allowance_eligible_positions,omitempty"`
}

// Apply returns a copy of c with the request's fields replaced.
func (r *UpdateConfigRequest) Apply(c Config) Config {
	out := c.Clone()
	if r.Rates != nil {
		out.Rates = maps.Clone(r.Rates)
	}
	if r.GracePeriodMinutes != nil {
		out.GracePeriodMinutes = *r.GracePeriodMinutes
	}
	if r.LateDeductionPerMinute != nil {
		out.LateDeductionPerMinute = *r.LateDeductionPerMinute
	}
	if r.MealAllowance != nil {
		out.MealAllowance = *r.MealAllowance
	}
	if r.BirthMonthBonus != nil {
		out.BirthMonthBonus = *r.BirthMonthBonus
	}
	if r.Positions != nil {
		out.Positions = slices.Clone(r.Positions)
	}
	if r.Branches != nil {
		out.Branches = slices.Clone(r.Branches)
	}
	if r.MealAllowanceEligiblePositions != nil {
		out.MealAllowanceEligiblePositions = slices.Clone(r.MealAllowanceEligiblePositions)
	}
	return out
}

// Validate checks a complete configuration, typically the result of Apply.
func (c Config) Validate() error {
	var errs validator.ValidationErrors

	if c.GracePeriodMinutes < 0 {
		errs.Add("grace_period_minutes", "must be non-negative")
	}
	if c.LateDeductionPerMinute.IsNegative() {
		errs.Add("late_deduction_per_minute", "must be non-negative")
	}
	if c.MealAllowance.IsNegative() {
		errs.Add("meal_allowance", "must be non-negative")
	}
	if c.BirthMonthBonus.IsNegative() {
		errs.Add("birth_month_bonus", "must be non-negative")
	}

	checkNames := func(field string, names []string) {
		if len(names) == 0 {
			errs.Add(field, "at least one entry is required")
			return
		}
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			if validator.IsEmpty(n) {
				errs.Add(field, "entries cannot be empty")
				return
			}
			if seen[n] {
				errs.Add(field, fmt.Sprintf("duplicate entry %q", n))
				return
			}
			seen[n] = true
		}
	}
	checkNames("positions", c.Positions)
	checkNames("branches", c.Branches)

	for _, p := range c.MealAllowanceEligiblePositions {
		if !c.HasPosition(p) {
			errs.Add("meal_allowance_eligible_positions", fmt.Sprintf("unknown position %q", p))
		}
	}

	keys := slices.Sorted(maps.Keys(c.Rates))
	for _, key := range keys {
		field := fmt.Sprintf("rates[%s]", key)
		position, branch, ok := SplitRateKey(key)
		switch {
		case !ok:
			errs.Add(field, "key must be in Position|Branch format")
		case !c.HasPosition(position):
			errs.Add(field, fmt.Sprintf("unknown position %q", position))
		case !c.HasBranch(branch):
			errs.Add(field, fmt.Sprintf("unknown branch %q", branch))
		case c.Rates[key].IsNegative():
			errs.Add(field, "must be non-negative")
		}
	}

	return errs.Err()
}

// ========== PAYSLIP DTOs ==========

type PayslipRequest struct {
	EmployeeID string
	Month      string // YYYY-MM
	Period     string // 1-15 | 16-END
}

func (r *PayslipRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is invalid")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be in YYYY-MM format")
	}
	if !validator.IsInSlice(r.Period, period.HalfValues) {
		errs.Add("period", period.ErrInvalidHalf.Error())
	}
	return errs.Err()
}

type PayslipResponse struct {
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	Position           string          `json:"position"`
	Branch             string          `json:"branch"`
	Period             string          `json:"period"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	PayoutDate         string          `json:"payout_date"`
	DailyRateUsed      decimal.Decimal `json:"daily_rate_used"`
	RateSource         RateSource      `json:"rate_source"`
	DaysPresent        int             `json:"days_present"`
	BasePay            decimal.Decimal `json:"base_pay"`
	LateDeduction      decimal.Decimal `json:"late_deduction"`
	UndertimeDeduction decimal.Decimal `json:"undertime_deduction"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	BirthMonthBonus    decimal.Decimal `json:"birth_month_bonus"`
	NetPay             decimal.Decimal `json:"net_pay"`
	Warnings           []string        `json:"warnings,omitempty"`
}

func ToPayslipResponse(slip SalarySlip, p period.Period) PayslipResponse {
	resp := PayslipResponse{
		EmployeeID:         slip.EmployeeID,
		Period:             string(p.Half),
		PeriodStart:        civiltime.FormatDate(slip.PeriodStart),
		PeriodEnd:          civiltime.FormatDate(slip.PeriodEnd),
		PayoutDate:         civiltime.FormatDate(slip.PayoutDate),
		DailyRateUsed:      slip.DailyRateUsed,
		RateSource:         slip.RateSource,
		DaysPresent:        slip.DaysPresent,
		BasePay:            slip.BasePay,
		LateDeduction:      slip.LateDeduction,
		UndertimeDeduction: slip.UndertimeDeduction,
		MealAllowance:      slip.MealAllowance,
		BirthMonthBonus:    slip.BirthMonthBonus,
		NetPay:             slip.NetPay,
	}
	if slip.RateSource == RateSourceDefaulted {
		resp.Warnings = append(resp.Warnings, ErrRateNotConfigured.Error())
	}
	return resp
}

type RateGapResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Position     string `json:"position"`
	Branch       string `json:"branch"`
	RateKey      string `json:"rate_key"`
}

package payroll

import (
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// ComputePayroll aggregates an employee's daily records over one period.
//
// Every PRESENT or INCOMPLETE day earns the daily rate. Lateness beyond the
// grace period is charged in full; undertime is always charged. Meal
// allowance and birth-month bonus are paid on the second-half run only, so
// at most once a month. Net pay is not clamped at zero.
func ComputePayroll(
	emp employee.Employee,
	records []attendance.DailyRecord,
	cfg Config,
	periodStart, periodEnd time.Time,
	isSecondHalf bool,
) SalarySlip {
	rate := cfg.ResolveRate(emp.Position, emp.Branch)

	basePay := decimal.Zero
	lateDeduction := decimal.Zero
	undertimeDeduction := decimal.Zero
	daysPresent := 0

	for _, r := range records {
		if !r.Status.Counted() {
			continue
		}
		daysPresent++
		basePay = basePay.Add(rate.Rate)

		if r.LateMinutes > cfg.GracePeriodMinutes {
			lateDeduction = lateDeduction.Add(
				cfg.LateDeductionPerMinute.Mul(decimal.NewFromInt(int64(r.LateMinutes))))
		}
		undertimeDeduction = undertimeDeduction.Add(
			cfg.LateDeductionPerMinute.Mul(decimal.NewFromInt(int64(r.UndertimeMinutes))))
	}

	mealAllowance := decimal.Zero
	if isSecondHalf && daysPresent > 0 && cfg.MealEligible(emp.Position) {
		mealAllowance = cfg.MealAllowance
	}

	birthMonthBonus := decimal.Zero
	if isSecondHalf && periodStart.Month() == emp.Birthday.Month() {
		birthMonthBonus = cfg.BirthMonthBonus
	}

	netPay := basePay.
		Add(mealAllowance).
		Add(birthMonthBonus).
		Sub(lateDeduction).
		Sub(undertimeDeduction)

	return SalarySlip{
		EmployeeID:         emp.ID,
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		PayoutDate:         PayoutDate(periodEnd),
		DailyRateUsed:      rate.Rate,
		RateSource:         rate.Source,
		BasePay:            basePay,
		LateDeduction:      lateDeduction,
		UndertimeDeduction: undertimeDeduction,
		MealAllowance:      mealAllowance,
		BirthMonthBonus:    birthMonthBonus,
		NetPay:             netPay,
		DaysPresent:        daysPresent,
	}
}

// PayoutDate is periodEnd, moved back to Saturday when it falls on a Sunday.
// Holidays are not considered.
func PayoutDate(periodEnd time.Time) time.Time {
	if periodEnd.Weekday() == time.Sunday {
		return periodEnd.AddDate(0, 0, -1)
	}
	return periodEnd
}

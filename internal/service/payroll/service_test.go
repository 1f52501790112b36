package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRecords returns the same daily record for every day of any period.
type stubRecords struct {
	perDay attendance.DailyRecord
	asked  []period.Period
}

func (s *stubRecords) DailyRecords(_ context.Context, _ string, p period.Period) ([]attendance.DailyRecord, error) {
	s.asked = append(s.asked, p)
	var out []attendance.DailyRecord
	for _, d := range p.Days() {
		rec := s.perDay
		rec.Date = d
		out = append(out, rec)
	}
	return out, nil
}

func birthday(m time.Month) time.Time {
	return time.Date(1990, m, 10, 0, 0, 0, 0, time.UTC)
}

func newService(records *stubRecords) (payroll.PayrollService, *memory.ConfigRepository) {
	configs := memory.NewConfigRepository()
	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "EMP-001", FirstName: "Maria", LastName: "Santos", Birthday: birthday(time.March),
			Branch: "Solano", Position: "Team Leader", IsActive: true},
		employee.Employee{ID: "EMP-002", FirstName: "Jose", LastName: "Cruz", Birthday: birthday(time.July),
			Branch: "Cabanatuan", Position: "Regular Staff", IsActive: true},
		employee.Employee{ID: "EMP-003", FirstName: "Ana", LastName: "Reyes", Birthday: birthday(time.July),
			Branch: "Cabanatuan", Position: "Regular Staff", IsActive: false},
	)
	return NewPayrollService(configs, employees, records, metrics.NewNop()), configs
}

func rates(kv ...string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = decimal.RequireFromString(kv[i+1])
	}
	return out
}

func TestGetConfig_DefaultsUntilSaved(t *testing.T) {
	svc, _ := newService(&stubRecords{})

	cfg, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.GracePeriodMinutes)
	assert.True(t, cfg.MealAllowance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, []string{"Cabanatuan", "Solano"}, cfg.Branches)
	assert.Nil(t, cfg.UpdatedAt)
}

func TestUpdateConfig_PartialAndZeroSettable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(&stubRecords{})

	zero := 0
	resp, err := svc.UpdateConfig(ctx, payroll.UpdateConfigRequest{
		GracePeriodMinutes: &zero,
		Rates:              rates("Team Leader|Solano", "650"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.GracePeriodMinutes)
	assert.True(t, resp.BirthMonthBonus.Equal(decimal.NewFromInt(1000)))
	assert.NotNil(t, resp.UpdatedAt)

	again, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.GracePeriodMinutes)
	assert.Len(t, again.Rates, 1)
}

func TestUpdateConfig_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc, configs := newService(&stubRecords{})

	_, err := svc.UpdateConfig(ctx, payroll.UpdateConfigRequest{
		Positions: []string{"Regular Staff"}, // drops meal-eligible positions still listed
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "meal_allowance_eligible_positions")

	_, err = configs.Get(ctx)
	assert.ErrorIs(t, err, payroll.ErrConfigNotFound, "nothing saved")
}

func TestComputePayslip_SecondHalf(t *testing.T) {
	ctx := context.Background()
	records := &stubRecords{perDay: attendance.DailyRecord{Status: attendance.DayPresent, LateMinutes: 20}}
	svc, _ := newService(records)

	_, err := svc.UpdateConfig(ctx, payroll.UpdateConfigRequest{Rates: rates("Team Leader|Solano", "650")})
	require.NoError(t, err)

	// 2024-03-16..31 has 16 days and ends on a Sunday.
	slip, err := svc.ComputePayslip(ctx, payroll.PayslipRequest{EmployeeID: "EMP-001", Month: "2024-03", Period: "16-END"})
	require.NoError(t, err)

	require.Len(t, records.asked, 1)
	assert.Equal(t, "2024-03-16", records.asked[0].StartDate())

	assert.Equal(t, 16, slip.DaysPresent)
	assert.Equal(t, "2024-03-30", slip.PayoutDate)
	assert.Equal(t, payroll.RateSourceConfigured, slip.RateSource)
	assert.True(t, slip.BasePay.Equal(decimal.NewFromInt(650*16)), slip.BasePay.String())
	assert.True(t, slip.LateDeduction.Equal(decimal.NewFromInt(100*16)), slip.LateDeduction.String())
	assert.True(t, slip.MealAllowance.Equal(decimal.NewFromInt(100)))
	assert.True(t, slip.BirthMonthBonus.Equal(decimal.NewFromInt(1000)))
	assert.True(t, slip.NetPay.Equal(decimal.NewFromInt(10400-1600+1100)), slip.NetPay.String())
	assert.Equal(t, "Maria Santos", slip.EmployeeName)
	assert.Empty(t, slip.Warnings)
}

func TestComputePayslip_DefaultedRateWarns(t *testing.T) {
	svc, _ := newService(&stubRecords{perDay: attendance.DailyRecord{Status: attendance.DayPresent}})

	slip, err := svc.ComputePayslip(context.Background(), payroll.PayslipRequest{EmployeeID: "EMP-002", Month: "2024-03", Period: "1-15"})
	require.NoError(t, err)

	assert.Equal(t, payroll.RateSourceDefaulted, slip.RateSource)
	assert.True(t, slip.NetPay.IsZero())
	assert.NotEmpty(t, slip.Warnings)
}

func TestComputePayslip_Errors(t *testing.T) {
	svc, _ := newService(&stubRecords{})
	ctx := context.Background()

	_, err := svc.ComputePayslip(ctx, payroll.PayslipRequest{EmployeeID: "EMP-404", Month: "2024-03", Period: "1-15"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.ComputePayslip(ctx, payroll.PayslipRequest{EmployeeID: "EMP-001", Month: "March", Period: "1-15"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestListRateGaps(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(&stubRecords{})

	_, err := svc.UpdateConfig(ctx, payroll.UpdateConfigRequest{Rates: rates("Team Leader|Solano", "650")})
	require.NoError(t, err)

	gaps, err := svc.ListRateGaps(ctx)
	require.NoError(t, err)
	require.Len(t, gaps, 1, "inactive employees are ignored")
	assert.Equal(t, "EMP-002", gaps[0].EmployeeID)
	assert.Equal(t, "Regular Staff|Cabanatuan", gaps[0].RateKey)
}

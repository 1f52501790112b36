package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/payroll"
)

// RateGapLister is satisfied by payroll.PayrollService.
type RateGapLister interface {
	ListRateGaps(ctx context.Context) ([]payroll.RateGapResponse, error)
}

type PayrollJobs struct {
	payrollSvc RateGapLister
}

func NewPayrollJobs(payrollSvc RateGapLister) *PayrollJobs {
	return &PayrollJobs{payrollSvc: payrollSvc}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, rateGapInterval time.Duration) {
	scheduler.AddJob("report_rate_gaps", rateGapInterval, j.ReportRateGaps)
}

// ReportRateGaps warns about active employees that would be paid a zero daily
// rate. Listing the gaps also refreshes the payroll_rate_gaps gauge.
func (j *PayrollJobs) ReportRateGaps(ctx context.Context) error {
	gaps, err := j.payrollSvc.ListRateGaps(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rate gaps: %w", err)
	}

	if len(gaps) == 0 {
		slog.Info("Cron: every active employee has a configured daily rate")
		return nil
	}

	for _, gap := range gaps {
		slog.Warn("Cron: daily rate not configured",
			"employee_id", gap.EmployeeID,
			"rate_key", gap.RateKey,
		)
	}
	slog.Warn("Cron: rate gaps found", "count", len(gaps))
	return nil
}

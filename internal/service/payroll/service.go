package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/metrics"
)

// DailyRecordSource computes an employee's daily records over a period.
type DailyRecordSource interface {
	DailyRecords(ctx context.Context, employeeID string, p period.Period) ([]attendance.DailyRecord, error)
}

type PayrollServiceImpl struct {
	configRepo   payroll.ConfigRepository
	employeeRepo employee.EmployeeRepository
	records      DailyRecordSource
	metrics      *metrics.Metrics
}

func NewPayrollService(
	configRepo payroll.ConfigRepository,
	employeeRepo employee.EmployeeRepository,
	records DailyRecordSource,
	m *metrics.Metrics,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		configRepo:   configRepo,
		employeeRepo: employeeRepo,
		records:      records,
		metrics:      m,
	}
}

// CurrentConfig implements payroll.PayrollService.
func (s *PayrollServiceImpl) CurrentConfig(ctx context.Context) (payroll.Config, error) {
	cfg, err := s.configRepo.Get(ctx)
	if errors.Is(err, payroll.ErrConfigNotFound) {
		return payroll.DefaultConfig(), nil
	}
	if err != nil {
		return payroll.Config{}, fmt.Errorf("failed to load payroll configuration: %w", err)
	}
	return cfg, nil
}

// GetConfig implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetConfig(ctx context.Context) (payroll.ConfigResponse, error) {
	cfg, err := s.CurrentConfig(ctx)
	if err != nil {
		return payroll.ConfigResponse{}, err
	}
	return payroll.ToConfigResponse(cfg), nil
}

// UpdateConfig implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateConfig(ctx context.Context, req payroll.UpdateConfigRequest) (payroll.ConfigResponse, error) {
	current, err := s.CurrentConfig(ctx)
	if err != nil {
		return payroll.ConfigResponse{}, err
	}

	next := req.Apply(current)
	if err := next.Validate(); err != nil {
		return payroll.ConfigResponse{}, err
	}

	saved, err := s.configRepo.Upsert(ctx, next)
	if err != nil {
		return payroll.ConfigResponse{}, fmt.Errorf("failed to save payroll configuration: %w", err)
	}

	slog.Info("Payroll configuration updated",
		"rates", len(saved.Rates),
		"positions", len(saved.Positions),
		"branches", len(saved.Branches),
	)
	return payroll.ToConfigResponse(saved), nil
}

// ComputePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputePayslip(ctx context.Context, req payroll.PayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	p, err := period.New(req.Month, period.Half(req.Period))
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	cfg, err := s.CurrentConfig(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	records, err := s.records.DailyRecords(ctx, emp.ID, p)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slip := payroll.ComputePayroll(emp, records, cfg, p.Start, p.End, p.IsSecondHalf())
	if slip.RateSource == payroll.RateSourceDefaulted {
		key := payroll.RateKey(emp.Position, emp.Branch)
		s.metrics.RateDefaulted(key)
		slog.Warn("Daily rate defaulted to zero",
			"employee_id", emp.ID,
			"rate_key", key,
			"period_start", p.StartDate(),
			"error", payroll.ErrRateNotConfigured,
		)
	}

	resp := payroll.ToPayslipResponse(slip, p)
	resp.EmployeeName = emp.FullName()
	resp.Position = emp.Position
	resp.Branch = emp.Branch
	return resp, nil
}

// ListRateGaps implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRateGaps(ctx context.Context) ([]payroll.RateGapResponse, error) {
	cfg, err := s.CurrentConfig(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	gaps := make([]payroll.RateGapResponse, 0)
	for _, e := range employees {
		res := cfg.ResolveRate(e.Position, e.Branch)
		if !res.Defaulted() {
			continue
		}
		gaps = append(gaps, payroll.RateGapResponse{
			EmployeeID:   e.ID,
			EmployeeName: e.FullName(),
			Position:     e.Position,
			Branch:       e.Branch,
			RateKey:      res.Key,
		})
	}

	s.metrics.SetRateGaps(len(gaps))
	return gaps, nil
}

package payroll

import "context"

type PayrollService interface {
	// GetConfig returns the saved configuration or DefaultConfig.
	GetConfig(ctx context.Context) (ConfigResponse, error)
	CurrentConfig(ctx context.Context) (Config, error)
	UpdateConfig(ctx context.Context, req UpdateConfigRequest) (ConfigResponse, error)

	ComputePayslip(ctx context.Context, req PayslipRequest) (PayslipResponse, error)

	// ListRateGaps lists active employees whose daily rate would default to zero.
	ListRateGaps(ctx context.Context) ([]RateGapResponse, error)
}

package payroll

import "context"

// ConfigRepository stores the single payroll configuration.
type ConfigRepository interface {
	// Get returns ErrConfigNotFound until a configuration is saved.
	Get(ctx context.Context) (Config, error)
	Upsert(ctx context.Context, cfg Config) (Config, error)
}

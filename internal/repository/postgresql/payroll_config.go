package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollConfigRepositoryImpl struct {
	db *database.DB
}

func NewPayrollConfigRepository(db *database.DB) payroll.ConfigRepository {
	return &payrollConfigRepositoryImpl{db: db}
}

// Money columns travel as text so no precision is lost in float64.
const payrollConfigColumns = `id, rates, grace_period_minutes,
	late_deduction_per_minute::text, meal_allowance::text, birth_month_bonus::text,
	positions, branches, meal_allowance_eligible_positions, updated_at`

func scanPayrollConfig(row pgx.Row) (payroll.Config, error) {
	var (
		cfg                        payroll.Config
		rates                      []byte
		lateDeduction, meal, bonus string
	)
	err := row.Scan(
		&cfg.ID, &rates, &cfg.GracePeriodMinutes,
		&lateDeduction, &meal, &bonus,
		&cfg.Positions, &cfg.Branches, &cfg.MealAllowanceEligiblePositions, &cfg.UpdatedAt,
	)
	if err != nil {
		return payroll.Config{}, err
	}

	cfg.Rates = map[string]decimal.Decimal{}
	if err := json.Unmarshal(rates, &cfg.Rates); err != nil {
		return payroll.Config{}, fmt.Errorf("decode payroll rates: %w", err)
	}
	if cfg.LateDeductionPerMinute, err = decimal.NewFromString(lateDeduction); err != nil {
		return payroll.Config{}, err
	}
	if cfg.MealAllowance, err = decimal.NewFromString(meal); err != nil {
		return payroll.Config{}, err
	}
	if cfg.BirthMonthBonus, err = decimal.NewFromString(bonus); err != nil {
		return payroll.Config{}, err
	}
	return cfg, nil
}

// Get implements payroll.ConfigRepository.
func (r *payrollConfigRepositoryImpl) Get(ctx context.Context) (payroll.Config, error) {
	q := GetQuerier(ctx, r.db)

	cfg, err := scanPayrollConfig(q.QueryRow(ctx, `SELECT `+payrollConfigColumns+` FROM payroll_config WHERE singleton`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Config{}, payroll.ErrConfigNotFound
		}
		return payroll.Config{}, fmt.Errorf("failed to get payroll config: %w", err)
	}
	return cfg, nil
}

// Upsert implements payroll.ConfigRepository.
func (r *payrollConfigRepositoryImpl) Upsert(ctx context.Context, cfg payroll.Config) (payroll.Config, error) {
	q := GetQuerier(ctx, r.db)

	id := cfg.ID
	if id == "" {
		newID, err := uuid.NewV7()
		if err != nil {
			return payroll.Config{}, err
		}
		id = newID.String()
	}

	rates := cfg.Rates
	if rates == nil {
		rates = map[string]decimal.Decimal{}
	}
	ratesJSON, err := json.Marshal(rates)
	if err != nil {
		return payroll.Config{}, fmt.Errorf("encode payroll rates: %w", err)
	}

	query := `
		INSERT INTO payroll_config (
			id, rates, grace_period_minutes, late_deduction_per_minute, meal_allowance,
			birth_month_bonus, positions, branches, meal_allowance_eligible_positions
		) VALUES ($1, $2::jsonb, $3, $4::numeric, $5::numeric, $6::numeric, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT payroll_config_singleton_key DO UPDATE
		SET rates = EXCLUDED.rates,
			grace_period_minutes = EXCLUDED.grace_period_minutes,
			late_deduction_per_minute = EXCLUDED.late_deduction_per_minute,
			meal_allowance = EXCLUDED.meal_allowance,
			birth_month_bonus = EXCLUDED.birth_month_bonus,
			positions = EXCLUDED.positions,
			branches = EXCLUDED.branches,
			meal_allowance_eligible_positions = EXCLUDED.meal_allowance_eligible_positions,
			updated_at = NOW()
		RETURNING ` + payrollConfigColumns

	saved, err := scanPayrollConfig(q.QueryRow(ctx, query,
		id, string(ratesJSON), cfg.GracePeriodMinutes,
		cfg.LateDeductionPerMinute.String(), cfg.MealAllowance.String(), cfg.BirthMonthBonus.String(),
		nonNil(cfg.Positions), nonNil(cfg.Branches), nonNil(cfg.MealAllowanceEligiblePositions),
	))
	if err != nil {
		return payroll.Config{}, fmt.Errorf("failed to save payroll config: %w", err)
	}
	return saved, nil
}

// TEXT[] NOT NULL rejects a nil slice.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

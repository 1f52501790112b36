package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

const scheduleColumns = `id, employee_id, to_char(date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), created_at, updated_at`

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var (
		s          schedule.Schedule
		start, end string
	)
	if err := row.Scan(&s.ID, &s.EmployeeID, &s.Date, &start, &end, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return schedule.Schedule{}, err
	}

	var err error
	if s.StartTime, err = civiltime.ParseTimeOfDay(start); err != nil {
		return schedule.Schedule{}, err
	}
	if s.EndTime, err = civiltime.ParseTimeOfDay(end); err != nil {
		return schedule.Schedule{}, err
	}
	return s, nil
}

func collectSchedules(rows pgx.Rows) ([]schedule.Schedule, error) {
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Upsert implements schedule.ScheduleRepository. All rows are written in one
// transaction.
func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, schedules []schedule.Schedule) ([]schedule.Schedule, error) {
	query := `
		INSERT INTO schedules (id, employee_id, date, start_time, end_time)
		VALUES ($1, $2, $3::date, $4::time, $5::time)
		ON CONFLICT ON CONSTRAINT schedules_employee_date_key DO UPDATE
		SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time, updated_at = NOW()
		RETURNING ` + scheduleColumns

	saved := make([]schedule.Schedule, 0, len(schedules))
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		for _, s := range schedules {
			id := s.ID
			if id == "" {
				newID, err := uuid.NewV7()
				if err != nil {
					return err
				}
				id = newID.String()
			}

			row, err := scanSchedule(q.QueryRow(ctx, query,
				id, s.EmployeeID, s.Date, s.StartTime.String(), s.EndTime.String(),
			))
			if err != nil {
				return fmt.Errorf("failed to upsert schedule %s on %s: %w", s.EmployeeID, s.Date, err)
			}
			saved = append(saved, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetByEmployeeAndDate implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSchedule(q.QueryRow(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE employee_id = $1 AND date = $2::date`,
		employeeID, date,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule %s on %s: %w", employeeID, date, err)
	}
	return s, nil
}

// ListByEmployeeAndRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end string) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE employee_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date`,
		employeeID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return collectSchedules(rows)
}

// ListUpcoming implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListUpcoming(ctx context.Context, employeeID string, fromDate string, limit int) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE employee_id = $1 AND date >= $2::date
		ORDER BY date
		LIMIT $3`,
		employeeID, fromDate, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming schedules: %w", err)
	}
	return collectSchedules(rows)
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceLogRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceLogRepository(db *database.DB) attendance.AttendanceLogRepository {
	return &attendanceLogRepositoryImpl{db: db}
}

const attendanceLogColumns = `id, employee_id, "timestamp", to_char(date, 'YYYY-MM-DD'), type, created_at`

func scanAttendanceLog(row pgx.Row) (attendance.AttendanceLog, error) {
	var (
		l         attendance.AttendanceLog
		punchType string
	)
	if err := row.Scan(&l.ID, &l.EmployeeID, &l.Timestamp, &l.Date, &punchType, &l.CreatedAt); err != nil {
		return attendance.AttendanceLog{}, err
	}
	l.Type = attendance.PunchType(punchType)
	return l, nil
}

// Create implements attendance.AttendanceLogRepository. The slot constraint
// is the final arbiter when two scans race past the service checks.
func (r *attendanceLogRepositoryImpl) Create(ctx context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.AttendanceLog{}, err
		}
		log.ID = id.String()
	}

	query := `
		INSERT INTO attendance_logs (id, employee_id, "timestamp", date, type)
		VALUES ($1, $2, $3, $4::date, $5)
		ON CONFLICT ON CONSTRAINT attendance_logs_slot_key DO NOTHING
		RETURNING ` + attendanceLogColumns

	created, err := scanAttendanceLog(q.QueryRow(ctx, query,
		log.ID, log.EmployeeID, log.Timestamp, log.Date, string(log.Type),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceLog{}, attendance.ErrPunchSlotTaken
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to create attendance log: %w", err)
	}
	return created, nil
}

// ListByEmployeeAndDate implements attendance.AttendanceLogRepository.
func (r *attendanceLogRepositoryImpl) ListByEmployeeAndDate(ctx context.Context, employeeID string, date string) ([]attendance.AttendanceLog, error) {
	return r.ListByEmployeeAndRange(ctx, employeeID, date, date)
}

// ListByEmployeeAndRange implements attendance.AttendanceLogRepository.
func (r *attendanceLogRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end string) ([]attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceLogColumns+`
		FROM attendance_logs
		WHERE employee_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY "timestamp", id`,
		employeeID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.AttendanceLog
	for rows.Next() {
		l, err := scanAttendanceLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

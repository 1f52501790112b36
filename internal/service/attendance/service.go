package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/validator"
)

// Config holds scan handling configuration
type Config struct {
	// A scan of the same slot within this window of the previous punch is
	// rejected as a double tap. Zero disables the check.
	DuplicateWindow time.Duration
}

type AttendanceServiceImpl struct {
	logRepo      attendance.AttendanceLogRepository
	scheduleRepo schedule.ScheduleRepository
	employeeRepo employee.EmployeeRepository
	guard        attendance.ScanGuard
	publisher    attendance.ScanPublisher
	metrics      *metrics.Metrics
	clock        *civiltime.Clock
	config       Config
}

func NewAttendanceService(
	logRepo attendance.AttendanceLogRepository,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	guard attendance.ScanGuard,
	publisher attendance.ScanPublisher,
	m *metrics.Metrics,
	clock *civiltime.Clock,
	cfg Config,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		logRepo:      logRepo,
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		guard:        guard,
		publisher:    publisher,
		metrics:      m,
		clock:        clock,
		config:       cfg,
	}
}

// Scan implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	started := time.Now()
	resp, err := s.scan(ctx, req)
	s.metrics.ScanResult(scanResult(err), started)
	return resp, err
}

func (s *AttendanceServiceImpl) scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	release, err := s.guard.Lock(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ScanResponse{}, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to release scan lock", "employee_id", req.EmployeeID, "error", err)
		}
	}()

	// Checked under the lock so a scan that waited on the lock sees the
	// cooldown started by the scan that held it.
	cooling, err := s.guard.InCooldown(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ScanResponse{}, err
	}
	if cooling {
		return attendance.ScanResponse{}, attendance.ErrScanCooldown
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ScanResponse{}, err
	}
	if !emp.IsActive {
		return attendance.ScanResponse{}, employee.ErrEmployeeInactive
	}

	now := s.clock.Now()
	today := s.clock.LocalDate(now)

	todays, err := s.logRepo.ListByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.ScanResponse{}, fmt.Errorf("failed to load today's punches: %w", err)
	}
	sched, err := s.scheduleOn(ctx, emp.ID, today)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	punchType := attendance.Classify(todays, now, sched, s.clock.Location())

	if last := latestPunch(todays); s.config.DuplicateWindow > 0 && last != nil &&
		last.Type == punchType && now.Sub(last.Timestamp) < s.config.DuplicateWindow {
		return attendance.ScanResponse{}, attendance.ErrDuplicateScan
	}

	created, err := s.logRepo.Create(ctx, attendance.AttendanceLog{
		EmployeeID: emp.ID,
		Timestamp:  now,
		Date:       today,
		Type:       punchType,
	})
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	if err := s.guard.MarkScanned(ctx, emp.ID); err != nil {
		slog.Warn("Failed to start scan cooldown", "employee_id", emp.ID, "error", err)
	}

	ts := created.Timestamp
	resp := attendance.ScanResponse{
		LogID:        created.ID,
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Branch:       emp.Branch,
		Type:         created.Type,
		Date:         created.Date,
		Timestamp:    ts,
		TimeDisplay:  s.clock.FormatClock(&ts),
	}

	s.publisher.PublishScan(attendance.ScanEvent(resp))
	s.metrics.PunchRecorded(string(created.Type), emp.Branch)
	slog.Info("Punch recorded",
		"employee_id", emp.ID,
		"branch", emp.Branch,
		"type", created.Type,
		"date", created.Date,
	)

	return resp, nil
}

func scanResult(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return metrics.ScanRecorded
	case errors.Is(err, attendance.ErrScanCooldown):
		return metrics.ScanCooldown
	case errors.Is(err, attendance.ErrScanInProgress):
		return metrics.ScanInProgress
	case errors.Is(err, attendance.ErrDuplicateScan):
		return metrics.ScanDuplicate
	case errors.Is(err, attendance.ErrPunchSlotTaken):
		return metrics.ScanSlotTaken
	case errors.As(err, &verrs),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrEmployeeInactive):
		return metrics.ScanRejected
	default:
		return metrics.ScanFailed
	}
}

func latestPunch(logs []attendance.AttendanceLog) *attendance.AttendanceLog {
	var latest *attendance.AttendanceLog
	for i := range logs {
		if latest == nil || logs[i].Timestamp.After(latest.Timestamp) {
			latest = &logs[i]
		}
	}
	return latest
}

// scheduleOn returns nil when no shift is set for the date.
func (s *AttendanceServiceImpl) scheduleOn(ctx context.Context, employeeID, date string) (*schedule.Schedule, error) {
	sched, err := s.scheduleRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if errors.Is(err, schedule.ErrScheduleNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	return &sched, nil
}

// ListLogs implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListLogs(ctx context.Context, req attendance.DayRequest) ([]attendance.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}

	resp := make([]attendance.LogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, attendance.ToLogResponse(l, s.clock))
	}
	return resp, nil
}

// GetDailyRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDailyRecord(ctx context.Context, req attendance.DayRequest) (attendance.DailyRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyRecordResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	logs, err := s.logRepo.ListByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return attendance.DailyRecordResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}
	sched, err := s.scheduleOn(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	rec := attendance.ComputeDailyRecord(req.Date, logs, sched, s.clock.Location())
	return attendance.ToDailyRecordResponse(rec, s.clock), nil
}

// GetDTR implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDTR(ctx context.Context, req attendance.DTRRequest) (attendance.DTRResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DTRResponse{}, err
	}

	p, err := period.New(req.Month, period.Half(req.Period))
	if err != nil {
		return attendance.DTRResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.DTRResponse{}, err
	}

	records, err := s.DailyRecords(ctx, emp.ID, p)
	if err != nil {
		return attendance.DTRResponse{}, err
	}

	rows := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, rec := range records {
		rows = append(rows, attendance.ToDailyRecordResponse(rec, s.clock))
	}

	return attendance.DTRResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Month:        req.Month,
		Period:       string(p.Half),
		StartDate:    p.StartDate(),
		EndDate:      p.EndDate(),
		Records:      rows,
		Summary:      attendance.Summarize(records),
	}, nil
}

// DailyRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DailyRecords(ctx context.Context, employeeID string, p period.Period) ([]attendance.DailyRecord, error) {
	logs, err := s.logRepo.ListByEmployeeAndRange(ctx, employeeID, p.StartDate(), p.EndDate())
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	schedules, err := s.scheduleRepo.ListByEmployeeAndRange(ctx, employeeID, p.StartDate(), p.EndDate())
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	logsByDate := make(map[string][]attendance.AttendanceLog)
	for _, l := range logs {
		logsByDate[l.Date] = append(logsByDate[l.Date], l)
	}
	schedByDate := make(map[string]*schedule.Schedule, len(schedules))
	for i := range schedules {
		schedByDate[schedules[i].Date] = &schedules[i]
	}

	days := p.Days()
	records := make([]attendance.DailyRecord, 0, len(days))
	for _, day := range days {
		records = append(records, attendance.ComputeDailyRecord(day, logsByDate[day], schedByDate[day], s.clock.Location()))
	}
	return records, nil
}

// Package memory implements the repositories in process memory. It keeps the
// same contracts as the PostgreSQL repositories and backs service tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
)

// ==================== EMPLOYEES ====================

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee)}
	for _, e := range seed {
		r.employees[e.ID] = e
	}
	return r
}

func (r *EmployeeRepository) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.employees[e.ID]; exists {
		return employee.Employee{}, employee.ErrEmployeeIDExists
	}
	for _, other := range r.employees {
		if strings.EqualFold(other.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.employees[e.ID] = e
	return e, nil
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []employee.Employee
	for _, e := range r.employees {
		if filter.Branch != nil && e.Branch != *filter.Branch {
			continue
		}
		if filter.ActiveOnly && !e.IsActive {
			continue
		}
		out = append(out, e)
	}
	sortEmployees(out)
	return out, nil
}

func (r *EmployeeRepository) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	for id, other := range r.employees {
		if id != e.ID && strings.EqualFold(other.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	e.UpdatedAt = time.Now()
	r.employees[e.ID] = e
	return e, nil
}

func (r *EmployeeRepository) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsActive = active
	r.employees[id] = e
	return nil
}

func (r *EmployeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.List(ctx, employee.EmployeeFilter{ActiveOnly: true})
}

func sortEmployees(es []employee.Employee) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].LastName != es[j].LastName {
			return es[i].LastName < es[j].LastName
		}
		return es[i].ID < es[j].ID
	})
}

// ==================== SCHEDULES ====================

type ScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[string]schedule.Schedule // employee_id|date
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{schedules: make(map[string]schedule.Schedule)}
}

func scheduleKey(employeeID, date string) string {
	return employeeID + "|" + date
}

func (r *ScheduleRepository) Upsert(_ context.Context, schedules []schedule.Schedule) ([]schedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	out := make([]schedule.Schedule, 0, len(schedules))
	for _, s := range schedules {
		key := scheduleKey(s.EmployeeID, s.Date)
		if existing, ok := r.schedules[key]; ok {
			s.ID = existing.ID
			s.CreatedAt = existing.CreatedAt
		} else {
			s.ID = uuid.Must(uuid.NewV7()).String()
			s.CreatedAt = now
		}
		s.UpdatedAt = now
		r.schedules[key] = s
		out = append(out, s)
	}
	return out, nil
}

func (r *ScheduleRepository) GetByEmployeeAndDate(_ context.Context, employeeID, date string) (schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schedules[scheduleKey(employeeID, date)]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (r *ScheduleRepository) ListByEmployeeAndRange(_ context.Context, employeeID, start, end string) ([]schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []schedule.Schedule
	for _, s := range r.schedules {
		if s.EmployeeID == employeeID && s.Date >= start && s.Date <= end {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *ScheduleRepository) ListUpcoming(_ context.Context, employeeID, fromDate string, limit int) ([]schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []schedule.Schedule
	for _, s := range r.schedules {
		if s.EmployeeID == employeeID && s.Date >= fromDate {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ==================== ATTENDANCE LOGS ====================

type AttendanceLogRepository struct {
	mu   sync.RWMutex
	logs []attendance.AttendanceLog
}

func NewAttendanceLogRepository(seed ...attendance.AttendanceLog) *AttendanceLogRepository {
	return &AttendanceLogRepository{logs: slices.Clone(seed)}
}

func (r *AttendanceLogRepository) Create(_ context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.logs {
		if l.EmployeeID == log.EmployeeID && l.Date == log.Date && l.Type == log.Type {
			return attendance.AttendanceLog{}, attendance.ErrPunchSlotTaken
		}
	}
	log.ID = uuid.Must(uuid.NewV7()).String()
	log.CreatedAt = time.Now()
	r.logs = append(r.logs, log)
	return log, nil
}

func (r *AttendanceLogRepository) ListByEmployeeAndDate(ctx context.Context, employeeID, date string) ([]attendance.AttendanceLog, error) {
	return r.ListByEmployeeAndRange(ctx, employeeID, date, date)
}

func (r *AttendanceLogRepository) ListByEmployeeAndRange(_ context.Context, employeeID, start, end string) ([]attendance.AttendanceLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.AttendanceLog
	for _, l := range r.logs {
		if l.EmployeeID == employeeID && l.Date >= start && l.Date <= end {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// Len returns the number of stored punches.
func (r *AttendanceLogRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.logs)
}

// ==================== PAYROLL CONFIG ====================

type ConfigRepository struct {
	mu  sync.RWMutex
	cfg *payroll.Config
}

func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{}
}

func (r *ConfigRepository) Get(_ context.Context) (payroll.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cfg == nil {
		return payroll.Config{}, payroll.ErrConfigNotFound
	}
	return r.cfg.Clone(), nil
}

func (r *ConfigRepository) Upsert(_ context.Context, cfg payroll.Config) (payroll.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := cfg.Clone()
	if r.cfg != nil {
		saved.ID = r.cfg.ID
	} else {
		saved.ID = uuid.Must(uuid.NewV7()).String()
	}
	saved.UpdatedAt = time.Now()
	r.cfg = &saved
	return saved.Clone(), nil
}

package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
)

// ConfigSource provides the positions and branches employees may be assigned.
type ConfigSource interface {
	CurrentConfig(ctx context.Context) (payroll.Config, error)
}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	configSource ConfigSource
	clock        *civiltime.Clock
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	configSource ConfigSource,
	clock *civiltime.Clock,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		configSource: configSource,
		clock:        clock,
	}
}

func (s *EmployeeServiceImpl) today() time.Time {
	today, _ := civiltime.ParseDate(s.clock.Today())
	return today
}

func (s *EmployeeServiceImpl) checkAssignment(ctx context.Context, position, branch string) error {
	cfg, err := s.configSource.CurrentConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load payroll configuration: %w", err)
	}
	if !cfg.HasPosition(position) {
		return fmt.Errorf("%w: %q", employee.ErrUnknownPosition, position)
	}
	if !cfg.HasBranch(branch) {
		return fmt.Errorf("%w: %q", employee.ErrUnknownBranch, branch)
	}
	return nil
}

// parsePastDate parses a civil date that may not lie after today.
func (s *EmployeeServiceImpl) parsePastDate(value string) (time.Time, error) {
	d, err := civiltime.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if d.After(s.today()) {
		return time.Time{}, fmt.Errorf("%w: %s", employee.ErrFutureDateNotAllowed, value)
	}
	return d, nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkAssignment(ctx, req.Position, req.Branch); err != nil {
		return employee.EmployeeResponse{}, err
	}

	birthday, err := s.parsePastDate(req.Birthday)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	entity := employee.Employee{
		ID:         strings.TrimSpace(req.ID),
		FirstName:  strings.TrimSpace(req.FirstName),
		MiddleName: strings.TrimSpace(req.MiddleName),
		LastName:   strings.TrimSpace(req.LastName),
		Birthday:   birthday,
		Phone:      req.Phone,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Branch:     req.Branch,
		Position:   req.Position,
		AvatarURL:  req.AvatarURL,
		IsActive:   true,
	}
	if req.HiredDate != nil && *req.HiredDate != "" {
		hired, err := s.parsePastDate(*req.HiredDate)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		entity.HiredDate = &hired
	}

	created, err := s.employeeRepo.Create(ctx, entity)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "branch", created.Branch, "position", created.Position)
	return employee.ToResponse(created, s.today()), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e, s.today()), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	today := s.today()
	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employee.ToResponse(e, today))
	}
	return out, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FirstName != nil {
		e.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.MiddleName != nil {
		e.MiddleName = strings.TrimSpace(*req.MiddleName)
	}
	if req.LastName != nil {
		e.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Birthday != nil {
		if e.Birthday, err = s.parsePastDate(*req.Birthday); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}
	if req.HiredDate != nil {
		hired, err := s.parsePastDate(*req.HiredDate)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		e.HiredDate = &hired
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.AvatarURL != nil {
		e.AvatarURL = req.AvatarURL
	}
	if req.Position != nil || req.Branch != nil {
		if req.Position != nil {
			e.Position = *req.Position
		}
		if req.Branch != nil {
			e.Branch = *req.Branch
		}
		if err := s.checkAssignment(ctx, e.Position, e.Branch); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	updated, err := s.employeeRepo.Update(ctx, e)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated, s.today()), nil
}

// SetActive implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetActive(ctx context.Context, req employee.SetActiveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.employeeRepo.SetActive(ctx, req.ID, *req.IsActive); err != nil {
		return err
	}
	slog.Info("Employee status changed", "employee_id", req.ID, "is_active", *req.IsActive)
	return nil
}

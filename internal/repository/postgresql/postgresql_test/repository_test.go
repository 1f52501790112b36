package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, id, email string) employee.Employee {
	t.Helper()
	e, err := repo.Create(ctx, employee.Employee{
		ID:        id,
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Birthday:  time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC),
		Email:     email,
		Branch:    "Solano",
		Position:  "Team Leader",
		IsActive:  true,
	})
	require.NoError(t, err)
	return e
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	created := createTestEmployee(t, ctx, repo, "EMP-001", "juan@example.com")
	assert.Equal(t, "EMP-001", created.ID)
	assert.Equal(t, time.March, created.Birthday.Month())
	assert.Nil(t, created.HiredDate)

	t.Run("duplicate id", func(t *testing.T) {
		_, err := repo.Create(ctx, employee.Employee{
			ID: "EMP-001", FirstName: "A", LastName: "B", Email: "other@example.com",
			Birthday: created.Birthday, Branch: "Solano", Position: "Team Leader",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)
	})

	t.Run("duplicate email ignores case", func(t *testing.T) {
		_, err := repo.Create(ctx, employee.Employee{
			ID: "EMP-002", FirstName: "A", LastName: "B", Email: "JUAN@example.com",
			Birthday: created.Birthday, Branch: "Solano", Position: "Team Leader",
		})
		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		assert.ErrorIs(t, repo.SetActive(ctx, "missing", false), employee.ErrEmployeeNotFound)
	})

	t.Run("update and deactivate", func(t *testing.T) {
		created.Branch = "Cabanatuan"
		updated, err := repo.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "Cabanatuan", updated.Branch)

		require.NoError(t, repo.SetActive(ctx, created.ID, false))
		active, err := repo.ListActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)

		branch := "Cabanatuan"
		all, err := repo.List(ctx, employee.EmployeeFilter{Branch: &branch})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.False(t, all[0].IsActive)
	})
}

func TestScheduleRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	createTestEmployee(t, ctx, postgresql.NewEmployeeRepository(setup.DB), "EMP-001", "juan@example.com")
	repo := postgresql.NewScheduleRepository(setup.DB)

	saved, err := repo.Upsert(ctx, []schedule.Schedule{
		{EmployeeID: "EMP-001", Date: "2024-03-12", StartTime: civiltime.MustTimeOfDay("08:00"), EndTime: civiltime.MustTimeOfDay("17:00")},
		{EmployeeID: "EMP-001", Date: "2024-03-11", StartTime: civiltime.MustTimeOfDay("09:00"), EndTime: civiltime.MustTimeOfDay("18:00")},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)

	// Replacing keeps one row per day.
	_, err = repo.Upsert(ctx, []schedule.Schedule{
		{EmployeeID: "EMP-001", Date: "2024-03-12", StartTime: civiltime.MustTimeOfDay("07:30"), EndTime: civiltime.MustTimeOfDay("16:30")},
	})
	require.NoError(t, err)

	got, err := repo.GetByEmployeeAndDate(ctx, "EMP-001", "2024-03-12")
	require.NoError(t, err)
	assert.Equal(t, "07:30", got.StartTime.String())
	assert.Equal(t, "16:30", got.EndTime.String())

	_, err = repo.GetByEmployeeAndDate(ctx, "EMP-001", "2024-03-13")
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)

	list, err := repo.ListByEmployeeAndRange(ctx, "EMP-001", "2024-03-01", "2024-03-15")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-11", list[0].Date)
	assert.Equal(t, "2024-03-12", list[1].Date)

	upcoming, err := repo.ListUpcoming(ctx, "EMP-001", "2024-03-12", 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "2024-03-12", upcoming[0].Date)
}

func TestAttendanceLogRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	createTestEmployee(t, ctx, postgresql.NewEmployeeRepository(setup.DB), "EMP-001", "juan@example.com")
	repo := postgresql.NewAttendanceLogRepository(setup.DB)

	amIn := time.Date(2024, 3, 11, 0, 5, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.AttendanceLog{
		EmployeeID: "EMP-001", Timestamp: amIn, Date: "2024-03-11", Type: attendance.PunchAMIn,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Timestamp.Equal(amIn))
	assert.Equal(t, "2024-03-11", created.Date)

	_, err = repo.Create(ctx, attendance.AttendanceLog{
		EmployeeID: "EMP-001", Timestamp: amIn.Add(time.Minute), Date: "2024-03-11", Type: attendance.PunchAMIn,
	})
	assert.ErrorIs(t, err, attendance.ErrPunchSlotTaken)

	_, err = repo.Create(ctx, attendance.AttendanceLog{
		EmployeeID: "EMP-001", Timestamp: amIn.Add(4 * time.Hour), Date: "2024-03-11", Type: attendance.PunchAMOut,
	})
	require.NoError(t, err)

	logs, err := repo.ListByEmployeeAndDate(ctx, "EMP-001", "2024-03-11")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, attendance.PunchAMIn, logs[0].Type)
	assert.Equal(t, attendance.PunchAMOut, logs[1].Type)

	logs, err = repo.ListByEmployeeAndRange(ctx, "EMP-001", "2024-03-12", "2024-03-15")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestPayrollConfigRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollConfigRepository(setup.DB)

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, payroll.ErrConfigNotFound)

	cfg := payroll.DefaultConfig()
	cfg.Rates[payroll.RateKey("Team Leader", "Solano")] = decimal.RequireFromString("650.50")
	saved, err := repo.Upsert(ctx, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	cfg.GracePeriodMinutes = 10
	cfg.MealAllowance = decimal.NewFromInt(120)
	_, err = repo.Upsert(ctx, cfg)
	require.NoError(t, err)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID, "singleton row is updated in place")
	assert.Equal(t, 10, got.GracePeriodMinutes)
	assert.True(t, got.MealAllowance.Equal(decimal.NewFromInt(120)))
	assert.True(t, got.Rates[payroll.RateKey("Team Leader", "Solano")].Equal(decimal.RequireFromString("650.50")))
	assert.Equal(t, cfg.Positions, got.Positions)
	assert.Equal(t, cfg.MealAllowanceEligiblePositions, got.MealAllowanceEligiblePositions)
}

package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInsufficientRole),
		errors.Is(err, auth.ErrEmployeeClaimMissing):
		Forbidden(w, err.Error())

	// Scan errors
	case errors.Is(err, attendance.ErrScanCooldown),
		errors.Is(err, attendance.ErrDuplicateScan):
		TooManyRequests(w, err.Error())
	case errors.Is(err, attendance.ErrScanInProgress),
		errors.Is(err, attendance.ErrPunchSlotTaken):
		Conflict(w, err.Error())

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrUnknownPosition),
		errors.Is(err, employee.ErrUnknownBranch),
		errors.Is(err, employee.ErrFutureDateNotAllowed):
		UnprocessableEntity(w, err.Error())

	// Schedule errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrEmptySchedule):
		UnprocessableEntity(w, err.Error())

	// Payroll errors
	case errors.Is(err, payroll.ErrConfigNotFound):
		NotFound(w, "Payroll configuration not found")
	case errors.Is(err, payroll.ErrRateNotConfigured):
		UnprocessableEntity(w, err.Error())

	// Civil time input errors
	case errors.Is(err, period.ErrInvalidHalf),
		errors.Is(err, civiltime.ErrInvalidDate),
		errors.Is(err, civiltime.ErrInvalidMonth),
		errors.Is(err, civiltime.ErrInvalidTimeOfDay):
		UnprocessableEntity(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

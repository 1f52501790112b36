package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/schedule"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/jwt"
)

type ScheduleHandler interface {
	SetSchedules(w http.ResponseWriter, r *http.Request)
	ListMonth(w http.ResponseWriter, r *http.Request)
	ListMyUpcoming(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// SetSchedules implements ScheduleHandler.
func (h *scheduleHandlerImpl) SetSchedules(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertSchedulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.SetSchedules(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedules saved successfully", result)
}

// ListMonth implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.scheduleService.ListMonth(r.Context(), schedule.ListMonthRequest{
		EmployeeID: q.Get("employee_id"),
		Month:      q.Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMyUpcoming implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListMyUpcoming(w http.ResponseWriter, r *http.Request) {
	p, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.ListUpcoming(r.Context(), p.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/sse"
)

type AttendanceHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	ListLogs(w http.ResponseWriter, r *http.Request)
	GetDailyRecord(w http.ResponseWriter, r *http.Request)
	GetDTR(w http.ResponseWriter, r *http.Request)
	GetMyDTR(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	hub               *sse.Hub
	metrics           *metrics.Metrics
	keepAlive         time.Duration
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, hub *sse.Hub, m *metrics.Metrics) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		hub:               hub,
		metrics:           m,
		keepAlive:         30 * time.Second,
	}
}

// Scan implements AttendanceHandler.
func (h *attendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Scan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, fmt.Sprintf("%s recorded for %s", result.Type, result.EmployeeName), result)
}

// ListLogs implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	logs, err := h.attendanceService.ListLogs(r.Context(), attendance.DayRequest{
		EmployeeID: q.Get("employee_id"),
		Date:       q.Get("date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, logs)
}

// GetDailyRecord implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDailyRecord(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	record, err := h.attendanceService.GetDailyRecord(r.Context(), attendance.DayRequest{
		EmployeeID: q.Get("employee_id"),
		Date:       q.Get("date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// GetDTR implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDTR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.writeDTR(w, r, attendance.DTRRequest{
		EmployeeID: q.Get("employee_id"),
		Month:      q.Get("month"),
		Period:     q.Get("period"),
	})
}

// GetMyDTR returns the caller's own time record.
func (h *attendanceHandlerImpl) GetMyDTR(w http.ResponseWriter, r *http.Request) {
	p, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	h.writeDTR(w, r, attendance.DTRRequest{
		EmployeeID: p.EmployeeID,
		Month:      q.Get("month"),
		Period:     q.Get("period"),
	})
}

func (h *attendanceHandlerImpl) writeDTR(w http.ResponseWriter, r *http.Request, req attendance.DTRRequest) {
	dtr, err := h.attendanceService.GetDTR(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, dtr)
}

// Stream pushes recorded scans as server-sent events. ?branch= narrows the
// feed to one branch.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	topic := sse.AllTopic
	branch := r.URL.Query().Get("branch")
	if branch != "" {
		topic = sse.BranchTopic(branch)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	h.metrics.StreamClientConnected()
	defer h.metrics.StreamClientDisconnected()
	slog.Info("Scan stream client connected", "branch", branch)

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(h.keepAlive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode stream event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			slog.Info("Scan stream client disconnected", "branch", branch)
			return
		}
	}
}

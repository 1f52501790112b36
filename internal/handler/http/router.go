package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string

	// ScanRateLimit caps scans per client IP per minute.
	ScanRateLimit int

	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer prometheus.Gatherer

	// HealthCheck backs /healthz. Nil always reports healthy.
	HealthCheck func(ctx context.Context) error
}

type Handlers struct {
	Attendance AttendanceHandler
	Schedule   ScheduleHandler
	Employee   EmployeeHandler
	Payroll    PayrollHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/healthz" || req.URL.Path == "/metrics"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.HealthCheck(ctx); err != nil {
				slog.Warn("Health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		response.Success(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {

		// The scan stream is opened by EventSource, which cannot set headers,
		// so the token may also travel as ?jwt=.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequireRole(auth.RoleAdmin))

			r.Get("/attendance/stream", h.Attendance.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.With(
				middleware.RequireRole(auth.RoleScanner, auth.RoleAdmin),
				httprate.LimitByIP(opts.ScanRateLimit, time.Minute),
			).Post("/attendance/scan", h.Attendance.Scan)

			r.Route("/me", func(r chi.Router) {
				r.Use(middleware.RequireEmployee)
				r.Get("/dtr", h.Attendance.GetMyDTR)
				r.Get("/schedules/upcoming", h.Schedule.ListMyUpcoming)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleAdmin))

				r.Get("/attendance/logs", h.Attendance.ListLogs)
				r.Get("/attendance/daily", h.Attendance.GetDailyRecord)
				r.Get("/attendance/dtr", h.Attendance.GetDTR)

				r.Route("/schedules", func(r chi.Router) {
					r.Put("/", h.Schedule.SetSchedules)
					r.Get("/", h.Schedule.ListMonth)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Post("/", h.Employee.CreateEmployee)
					r.Get("/", h.Employee.ListEmployees)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Employee.GetEmployee)
						r.Put("/", h.Employee.UpdateEmployee)
						r.Put("/active", h.Employee.SetActive)
					})
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/config", h.Payroll.GetConfig)
					r.Put("/config", h.Payroll.UpdateConfig)
					r.Get("/payslip", h.Payroll.GetPayslip)
					r.Get("/rate-gaps", h.Payroll.ListRateGaps)
				})
			})
		})
	})

	return r
}

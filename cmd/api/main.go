package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/config"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/dtr-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/scanguard"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/dtr-payroll-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/dtr-payroll-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/dtr-payroll-go/internal/service/payroll"
	scheduleService "github.com/cmlabs-hris/dtr-payroll-go/internal/service/schedule"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dtr-payroll"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock, err := civiltime.NewClock(cfg.App.Timezone)
	if err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	var guard attendance.ScanGuard
	if cfg.Redis.Enabled() {
		rdb, err := database.NewRedisClient(ctx, database.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		guard = scanguard.NewRedisGuard(rdb, cfg.Scan.Cooldown, cfg.Scan.LockTTL)
	} else {
		slog.Warn("REDIS_ADDR not set, scan cooldown and locks are local to this instance")
		guard = scanguard.NewLocalGuard(cfg.Scan.Cooldown)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	hub := sse.NewHub()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceLogRepo := postgresql.NewAttendanceLogRepository(db)
	payrollConfigRepo := postgresql.NewPayrollConfigRepository(db)

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceLogRepo,
		scheduleRepo,
		employeeRepo,
		guard,
		sse.NewScanBroadcaster(hub),
		m,
		clock,
		attendanceService.Config{DuplicateWindow: cfg.Scan.DuplicateWindow},
	)
	payrollSvc := payrollService.NewPayrollService(payrollConfigRepo, employeeRepo, attendanceSvc, m)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, payrollSvc, clock)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo, employeeRepo, clock)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.CORSOrigins,
		ScanRateLimit:  cfg.Scan.RateLimitPerMinute,
		Gatherer:       prometheus.DefaultGatherer,
		HealthCheck:    db.Ping,
	}, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, hub, m),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(payrollSvc).RegisterJobs(scheduler, cfg.Cron.RateGapInterval)
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(hub.Close)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "timezone", cfg.App.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/schedule"
	appHTTP "github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/asistencia-backend-go/internal/service/auth"
	leaveService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/notification"
	reportService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/report"
	scheduleService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/schedule"
	userService "github.com/cmlabs-hris/asistencia-backend-go/internal/service/user"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	loc := cfg.Location()

	if cfg.Database.AutoMigrate {
		m, err := a.migrator()
		if err != nil {
			return err
		}
		if err := m.Up(); err != nil {
			return err
		}
	}

	userRepo := postgresql.NewUserRepository(a.db)
	scheduleRepo := postgresql.NewScheduleRepository(a.db)
	JWTRepository := postgresql.NewJWTRepository(a.db)
	attendanceRepo := postgresql.NewAttendanceRepository(a.db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(a.db)
	reportRepo := postgresql.NewReportRepository(a.db)
	txManager := postgresql.NewTxManager(a.db)

	JWTService, err := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiration,
		cfg.JWT.RefreshExpiration,
		cfg.JWT.ResetPasswordExpiry,
		cfg.App.Env == "production",
	)
	if err != nil {
		return err
	}

	mailer, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	notifier := notificationService.NewNotificationService(hub, mailer, notificationService.Config{
		AdminEmail: cfg.Notify.AdminEmail,
		ReviewURL:  strings.TrimRight(cfg.App.FrontendURL, "/") + "/admin/leave",
	})
	defer notifier.Stop()

	defaultStart, err := schedule.ParseTimeOfDay(cfg.Attendance.DefaultStartTime)
	if err != nil {
		return err
	}
	defaultShift := attendance.Shift{Start: defaultStart, GracePeriodMinutes: cfg.Attendance.DefaultGraceMinute}

	authSvc := serviceAuth.NewAuthService(txManager, userRepo, JWTService, JWTRepository, mailer, cfg.App.FrontendURL)
	userSvc := userService.NewUserService(txManager, userRepo, scheduleRepo)
	scheduleSvc := scheduleService.NewScheduleService(txManager, scheduleRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, scheduleRepo, notifier, defaultShift, loc)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, notifier)
	reportSvc := reportService.NewReportService(reportRepo, loc)

	router := appHTTP.NewRouter(a.logger, cfg.App.CORSOrigins, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, loc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Stream:     appHTTP.NewStreamHandler(JWTService, notifier, userRepo),
	})

	scheduler := cron.NewScheduler(ctx)
	cron.NewAttendanceJobs(attendanceRepo, leaveRequestRepo, loc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server.RegisterOnShutdown(hub.Close)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "timezone", loc.String())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

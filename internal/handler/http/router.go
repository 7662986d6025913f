package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Schedule   ScheduleHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Report     ReportHandler
	Stream     StreamHandler
}

func NewRouter(logger *slog.Logger, corsOrigins []string, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
		// the live feed never finishes, skip it
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/admin/stream"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
		})

		// Authenticated by the short-lived token in the query string
		r.Get("/admin/stream", h.Stream.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Group(func(r chi.Router) {
					r.Get("/today", h.Attendance.Today)
					r.Get("/me", h.Attendance.GetMyAttendance)
				})
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Group(func(r chi.Router) {
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
					r.Post("/lunch/start", h.Attendance.StartLunch)
					r.Post("/lunch/end", h.Attendance.EndLunch)
					r.Post("/mark", h.Attendance.Mark)
				})
			})

			r.Route("/leave/requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/me", h.Leave.GetMyRequests)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.User.Get)
						r.Put("/", h.User.Update)
						r.Delete("/", h.User.Delete)
						r.Put("/schedule", h.User.AssignSchedule)
					})
				})

				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", h.Schedule.List)
					r.Post("/", h.Schedule.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Schedule.Get)
						r.Put("/", h.Schedule.Update)
						r.Delete("/", h.Schedule.Delete)
					})
				})

				r.Route("/admin/attendance", func(r chi.Router) {
					r.Get("/", h.Attendance.List)
					r.Get("/{id}", h.Attendance.Get)
				})

				r.Route("/admin/leave/requests", func(r chi.Router) {
					r.Get("/", h.Leave.ListRequests)
					r.Get("/{id}", h.Leave.GetRequest)
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})

				r.Route("/reports/attendance", func(r chi.Router) {
					r.Get("/", h.Report.AttendanceSummary)
					r.Get("/export/xlsx", h.Report.ExportXLSX)
					r.Get("/export/pdf", h.Report.ExportPDF)
				})

				r.Get("/admin/stream/token", h.Stream.Token)
			})
		})
	})
	return r
}

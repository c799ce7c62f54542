package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kirana-hr/kirana-backend-go/internal/handler/http/middleware"
	"github.com/kirana-hr/kirana-backend-go/internal/pkg/jwt"
)

func NewRouter(
	frontendURL string,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	calendarHandler CalendarHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kirana-hr"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Post("/employee-code", authHandler.LoginWithEmployeeCode)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Get("/{id}", employeeHandler.GetEmployee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.CreateEmployee)
					r.Put("/{id}", employeeHandler.UpdateEmployee)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListAttendance)
				r.Get("/{id}", attendanceHandler.GetAttendance)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", attendanceHandler.RecordAttendance)
					r.Put("/{id}", attendanceHandler.UpdateAttendance)
				})
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", leaveHandler.ListLeaveTypes)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", leaveHandler.CreateLeaveType)
					r.Delete("/{id}", leaveHandler.DeleteLeaveType)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.SubmitRequest)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.Get("/employee/{employeeID}", leaveHandler.ListEmployeeRequests)
				r.Post("/{id}/cancel", leaveHandler.CancelRequest)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", leaveHandler.ApproveRequest)
					r.Post("/{id}/reject", leaveHandler.RejectRequest)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/holidays", calendarHandler.ListHolidays)
				r.Get("/weekly-offs/employee/{employeeID}", calendarHandler.ListWeeklyOffs)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/holidays", calendarHandler.AddHoliday)
					r.Delete("/holidays/{id}", calendarHandler.RemoveHoliday)
					r.Post("/weekly-offs", calendarHandler.AssignWeeklyOff)
					r.Delete("/weekly-offs/{id}", calendarHandler.RemoveWeeklyOff)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/records/{id}/payslip", payrollHandler.DownloadPayslip)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/settings", payrollHandler.GetSettings)
					r.Put("/settings", payrollHandler.UpdateSettings)

					r.Post("/reconcile", payrollHandler.ReconcilePeriod)

					r.Post("/generate", payrollHandler.GeneratePayroll)
					r.Get("/records", payrollHandler.ListPayrollRecords)
					r.Get("/records/{id}", payrollHandler.GetPayrollRecord)
					r.Put("/records/{id}", payrollHandler.UpdatePayrollRecord)
					r.Delete("/records/{id}", payrollHandler.DeletePayrollRecord)
					r.Post("/records/finalize", payrollHandler.FinalizePayroll)
				})
			})
		})
	})
	return r
}

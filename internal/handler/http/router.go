package http

import (
	"log/slog"

	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/handler/http/middleware"
	"github.com/SkShizan/clg-project/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Dashboard  DashboardHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Employee   EmployeeHandler
	Master     MasterHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, employeeService employee.EmployeeService, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/dashboard", h.Dashboard.Get)
			r.Post("/dashboard", h.Dashboard.Get)

			// Employee self-service
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireEmployee(employeeService))
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)

				r.Route("/leave-request", func(r chi.Router) {
					r.Get("/", h.Leave.GetMyRequests)
					r.Post("/", h.Leave.CreateRequest)
				})
			})

			// Staff only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireStaff)

				r.Route("/admin-dashboard", func(r chi.Router) {
					r.Get("/", h.Attendance.DailyReport)
					r.Get("/export", h.Attendance.ExportDailyReport)
				})

				r.Get("/manage-leave", h.Leave.ListPending)
				r.Post("/leave/{id}/{decision}", h.Leave.Decide)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Employee.Get)
						r.Post("/", h.Employee.Update)
						r.Post("/delete", h.Employee.Delete)
					})
				})

				r.Route("/departments", func(r chi.Router) {
					r.Get("/", h.Master.ListDepartments)
					r.Post("/", h.Master.CreateDepartment)
					r.Post("/{id}/delete", h.Master.DeleteDepartment)
				})

				r.Route("/roles", func(r chi.Router) {
					r.Get("/", h.Master.ListRoles)
					r.Post("/", h.Master.CreateRole)
					r.Post("/{id}/delete", h.Master.DeleteRole)
				})
			})
		})
	})
	return r
}

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/SkShizan/clg-project/internal/config"
	appHTTP "github.com/SkShizan/clg-project/internal/handler/http"
	"github.com/SkShizan/clg-project/internal/pkg/clock"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/SkShizan/clg-project/internal/pkg/jwt"
	"github.com/SkShizan/clg-project/internal/repository/postgresql"
	attendanceService "github.com/SkShizan/clg-project/internal/service/attendance"
	serviceAuth "github.com/SkShizan/clg-project/internal/service/auth"
	employeeService "github.com/SkShizan/clg-project/internal/service/employee"
	leaveService "github.com/SkShizan/clg-project/internal/service/leave"
	"github.com/SkShizan/clg-project/internal/service/master"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			log.Fatal("Error applying migrations: ", err)
		}
	}

	transactor := postgresql.NewTransactor(db)
	accountRepo := postgresql.NewAccountRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	clk := clock.New(location)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authService := serviceAuth.NewAuthService(accountRepo, employeeRepo, refreshTokenRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(
		transactor,
		authService,
		accountRepo,
		employeeRepo,
		departmentRepo,
		roleRepo,
		attendanceRepo,
		leaveRequestRepo,
	)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, attendanceRepo, clk)
	leaveSvc := leaveService.NewLeaveService(transactor, leaveRequestRepo, attendanceRepo, clk)
	masterService := master.NewMasterService(departmentRepo, roleRepo)

	router := appHTTP.NewRouter(logger, cfg.App.AllowedOrigins, JWTService, employeeSvc, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Dashboard:  appHTTP.NewDashboardHandler(employeeSvc, attendanceSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, location),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Master:     appHTTP.NewMasterHandler(masterService),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server running", "address", fmt.Sprintf("http://localhost%s", port), "timezone", location.String())
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-tracker"),
		slog.String("env", cfg.App.Env),
	)
}

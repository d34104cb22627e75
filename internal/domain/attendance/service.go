package attendance

import (
	"context"

	"github.com/SkShizan/clg-project/internal/domain/employee"
)

type AttendanceService interface {
	// Dashboard ensures today's record and returns it with the full history.
	Dashboard(ctx context.Context, emp employee.Employee) (DashboardResponse, error)
	CheckIn(ctx context.Context, emp employee.Employee) (AttendanceResponse, error)
	CheckOut(ctx context.Context, emp employee.Employee) (AttendanceResponse, error)
	// DailyReport falls back to today when rawDate is empty or malformed.
	DailyReport(ctx context.Context, rawDate string) (DailyReportResponse, error)
}

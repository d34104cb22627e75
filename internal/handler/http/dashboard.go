package http

import (
	"errors"
	"net/http"

	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/handler/http/response"
	"github.com/SkShizan/clg-project/internal/pkg/jwt"
)

// AdminDashboardPath is where accounts without an employee profile are sent.
const AdminDashboardPath = "/api/v1/admin-dashboard"

type DashboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	employeeService   employee.EmployeeService
	attendanceService attendance.AttendanceService
}

func NewDashboardHandler(employeeService employee.EmployeeService, attendanceService attendance.AttendanceService) DashboardHandler {
	return &DashboardHandlerImpl{
		employeeService:   employeeService,
		attendanceService: attendanceService,
	}
}

// Get implements DashboardHandler. Unlike the self-service routes it does not
// sit behind RequireEmployee, so a staff account with no profile still gets a
// response pointing it at the admin dashboard.
func (h *DashboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	emp, err := h.employeeService.ResolveByAccount(ctx, claims.AccountID)
	if errors.Is(err, employee.ErrProfileNotLinked) {
		response.SuccessWithMessage(w, "Your account is not linked to an employee profile", attendance.DashboardResponse{
			ProfileLinked: false,
			History:       []attendance.AttendanceResponse{},
			AdminURL:      AdminDashboardPath,
		})
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	dashboard, err := h.attendanceService.Dashboard(ctx, emp)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.IsStaff {
		dashboard.AdminURL = AdminDashboardPath
	}

	response.Success(w, dashboard)
}

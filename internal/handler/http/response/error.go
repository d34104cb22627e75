package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/domain/auth"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/domain/leave"
	"github.com/SkShizan/clg-project/internal/domain/master/department"
	"github.com/SkShizan/clg-project/internal/domain/master/role"
	"github.com/SkShizan/clg-project/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token has been revoked")

	// Account domain errors
	case errors.Is(err, account.ErrStaffRequired):
		Forbidden(w, "Staff access required")
	case errors.Is(err, account.ErrAccountNotFound):
		NotFound(w, "Account not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrProfileNotLinked):
		Forbidden(w, "Your account is not linked to an employee profile")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Master data errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, role.ErrRoleNotFound):
		NotFound(w, "Role not found")

	// Attendance and leave errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

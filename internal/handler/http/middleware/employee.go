package middleware

import (
	"context"
	"net/http"

	"github.com/SkShizan/clg-project/internal/domain/auth"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/handler/http/response"
	"github.com/SkShizan/clg-project/internal/pkg/jwt"
)

type employeeKey struct{}

// RequireEmployee resolves the employee profile of the token's account and
// stores it in the request context. Accounts without a profile get 403.
func RequireEmployee(employeeService employee.EmployeeService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			emp, err := employeeService.ResolveByAccount(r.Context(), claims.AccountID)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), employeeKey{}, emp)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmployeeFromContext returns the employee stored by RequireEmployee.
func EmployeeFromContext(ctx context.Context) (employee.Employee, bool) {
	emp, ok := ctx.Value(employeeKey{}).(employee.Employee)
	return emp, ok
}

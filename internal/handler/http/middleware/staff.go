package middleware

import (
	"net/http"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/domain/auth"
	"github.com/SkShizan/clg-project/internal/handler/http/response"
	"github.com/SkShizan/clg-project/internal/pkg/jwt"
)

func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !claims.IsStaff {
			response.HandleError(w, account.ErrStaffRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

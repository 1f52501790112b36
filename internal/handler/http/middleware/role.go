package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/jwt"
)

// RequireRole allows the request when the caller holds any of roles.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := jwt.PrincipalFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if !p.HasRole(roles...) {
				response.HandleError(w, auth.ErrInsufficientRole)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireEmployee allows employee tokens that name the badge they belong to.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := jwt.PrincipalFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if p.Role != auth.RoleEmployee {
			response.HandleError(w, auth.ErrInsufficientRole)
			return
		}
		if p.EmployeeID == "" {
			response.HandleError(w, auth.ErrEmployeeClaimMissing)
			return
		}
		next.ServeHTTP(w, r)
	})
}

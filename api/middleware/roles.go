package middleware

import (
	"net/http"

	"github.com/Gortyum/feriadigital/api/responses"
	"github.com/Gortyum/feriadigital/pkg/enums"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/Gortyum/feriadigital/pkg/logger"
)

// RequireRole gates a route subtree to one role. Runs after Session.
func RequireRole(role enums.UserRole, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "Acceso denegado"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

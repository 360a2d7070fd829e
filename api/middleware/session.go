package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Gortyum/feriadigital/api/responses"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/session"
)

// SessionLookup resolves a session token into its live record.
type SessionLookup interface {
	Lookup(ctx context.Context, token string) (*session.Record, string, error)
	CookieName() string
}

// Session resolves the session cookie (or bearer token) and seeds the request
// context with the signed-in user. Requests without a live session get 401.
func Session(mgr SessionLookup, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, mgr.CookieName())
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Debe iniciar sesión"))
				return
			}

			rec, sessionID, err := mgr.Lookup(r.Context(), token)
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Debe iniciar sesión"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}

			ctx := WithSessionContext(r.Context(), rec.UserID, rec.Role, rec.Name, sessionID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, rec.UserID.String())
				ctx = logg.WithRole(ctx, rec.Role.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return ""
}

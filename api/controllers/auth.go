package controllers

import (
	"net/http"

	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/api/responses"
	"github.com/Gortyum/feriadigital/api/validators"
	"github.com/Gortyum/feriadigital/internal/auth"
	"github.com/Gortyum/feriadigital/internal/users"
	"github.com/Gortyum/feriadigital/pkg/enums"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/session"
)

// LoginPage renders the login context.
func LoginPage(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]interface{}{"pagina": "login"})
	}
}

// Login validates the credentials, mints a session, sets the cookie, and
// lands on the dashboard. Failures come back as error envelopes: there is no
// session yet to carry a flash.
func Login(svc auth.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload auth.LoginRequest
		if err := validators.DecodeBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := startSession(w, r, sessions, user, "Bienvenido, "+user.Name); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		seeOther(w, r, dashboardPath)
	}
}

// RegisterPage renders the registration context.
func RegisterPage(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]interface{}{"pagina": "registro"})
	}
}

// Register creates the account and signs the new user straight in.
func Register(svc auth.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload auth.RegisterRequest
		if err := validators.DecodeBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := startSession(w, r, sessions, user, "Registro exitoso"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		seeOther(w, r, dashboardPath)
	}
}

// Logout flushes the session record plus its flash queue and clears the
// cookie.
func Logout(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID := middleware.SessionIDFromContext(r.Context()); sessionID != "" {
			if err := sessions.Flush(r.Context(), sessionID); err != nil {
				logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "session flush failed")
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessions.CookieName(),
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		seeOther(w, r, "/login")
	}
}

// startSession mints the session, queues the greeting, and sets the cookie.
func startSession(w http.ResponseWriter, r *http.Request, sessions Sessions, user *users.UserDTO, welcome string) error {
	rec := session.Record{UserID: user.ID, Role: enums.UserRole(user.Role), Name: user.Name}
	token, sessionID, err := sessions.Create(r.Context(), rec)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}
	_ = sessions.PushFlash(r.Context(), sessionID, session.FlashSuccess, welcome)

	http.SetCookie(w, &http.Cookie{
		Name:     sessions.CookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

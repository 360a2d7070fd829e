package controllers

import (
	"context"
	"net/http"

	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/api/responses"
	"github.com/Gortyum/feriadigital/api/validators"
	"github.com/Gortyum/feriadigital/internal/auth"
	"github.com/Gortyum/feriadigital/internal/users"
	"github.com/Gortyum/feriadigital/pkg/db/models"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/session"
	"github.com/google/uuid"
)

type profileLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ProfileShow renders the profile page context.
func ProfileShow(repo profileLoader, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		user, err := repo.FindByID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile"))
			return
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{"perfil": users.FromModel(user)})
	}
}

// ProfileUpdate saves the editable profile fields and refreshes the session
// record so the displayed name stays current.
func ProfileUpdate(svc auth.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload auth.UpdateProfileRequest
		if err := validators.DecodeBody(r, &payload); err != nil {
			failRedirect(w, r, sessions, logg, err, "/perfil")
			return
		}

		user, err := svc.UpdateProfile(r.Context(), userID, payload)
		if err != nil {
			failRedirect(w, r, sessions, logg, err, "/perfil")
			return
		}

		if sessionID := middleware.SessionIDFromContext(r.Context()); sessionID != "" {
			rec := session.Record{UserID: user.ID, Role: middleware.RoleFromContext(r.Context()), Name: user.Name}
			if err := sessions.Refresh(r.Context(), sessionID, rec); err != nil {
				logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "session refresh failed")
			}
		}

		redirectWithFlash(w, r, sessions, logg, "/perfil", session.FlashSuccess, "Perfil actualizado")
	}
}

// PasswordChangePage renders the change-password context.
func PasswordChangePage(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeRender(w, r, sessions, logg, map[string]interface{}{"pagina": "cambiar-contrasena"})
	}
}

// PasswordChange verifies the current password and stores the new hash.
func PasswordChange(svc auth.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload auth.ChangePasswordRequest
		if err := validators.DecodeBody(r, &payload); err != nil {
			failRedirect(w, r, sessions, logg, err, "/cambiar-contrasena")
			return
		}

		if err := svc.ChangePassword(r.Context(), userID, payload); err != nil {
			failRedirect(w, r, sessions, logg, err, "/cambiar-contrasena")
			return
		}

		redirectWithFlash(w, r, sessions, logg, "/perfil", session.FlashSuccess, "Contraseña actualizada")
	}
}

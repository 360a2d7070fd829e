package controllers

import (
	"context"
	"net/http"

	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/api/responses"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/session"
)

// Sessions is the slice of the session manager the handlers need.
type Sessions interface {
	Create(ctx context.Context, rec session.Record) (string, string, error)
	Lookup(ctx context.Context, token string) (*session.Record, string, error)
	Refresh(ctx context.Context, sessionID string, rec session.Record) error
	Flush(ctx context.Context, sessionID string) error
	PushFlash(ctx context.Context, sessionID string, level session.FlashLevel, message string) error
	PopFlashes(ctx context.Context, sessionID string) ([]session.Flash, error)
	CookieName() string
}

const dashboardPath = "/dashboard"

// pushFlash queues a one-shot message. A failed push only loses the message,
// never the request.
func pushFlash(ctx context.Context, sessions Sessions, logg *logger.Logger, level session.FlashLevel, message string) {
	sessionID := middleware.SessionIDFromContext(ctx)
	if sessionID == "" {
		return
	}
	if err := sessions.PushFlash(ctx, sessionID, level, message); err != nil && logg != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "flash push failed")
	}
}

// popFlashes drains the session's pending messages for a render context.
func popFlashes(ctx context.Context, sessions Sessions, logg *logger.Logger) []session.Flash {
	sessionID := middleware.SessionIDFromContext(ctx)
	if sessionID == "" {
		return []session.Flash{}
	}
	flashes, err := sessions.PopFlashes(ctx, sessionID)
	if err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "flash pop failed")
		}
		return []session.Flash{}
	}
	return flashes
}

// renderContext wraps page data with the session identity and pending flashes.
func renderContext(ctx context.Context, sessions Sessions, logg *logger.Logger, data map[string]interface{}) map[string]interface{} {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["mensajes"] = popFlashes(ctx, sessions, logg)
	if name := middleware.UserNameFromContext(ctx); name != "" {
		data["usuario"] = name
		data["rol"] = middleware.RoleFromContext(ctx).String()
	}
	return data
}

// seeOther is the redirect-after-POST response.
func seeOther(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// redirectWithFlash queues a message and redirects.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, sessions Sessions, logg *logger.Logger, location string, level session.FlashLevel, message string) {
	pushFlash(r.Context(), sessions, logg, level, message)
	seeOther(w, r, location)
}

// failRedirect turns a service error into a flash + redirect. Forbidden errors
// land on the dashboard instead of the caller's page.
func failRedirect(w http.ResponseWriter, r *http.Request, sessions Sessions, logg *logger.Logger, err error, backLocation string) {
	message := "Error interno"
	location := backLocation

	if typed := pkgerrors.As(err); typed != nil {
		switch typed.Code() {
		case pkgerrors.CodeValidation, pkgerrors.CodeConflict, pkgerrors.CodeNotFound:
			message = pkgerrors.PublicMessage(err)
		case pkgerrors.CodeForbidden:
			message = "Acceso denegado"
			location = dashboardPath
		}
	}
	if message == "Error interno" && logg != nil {
		logg.Error(r.Context(), "handler failure", err)
	}

	redirectWithFlash(w, r, sessions, logg, location, session.FlashError, message)
}

// writeRender emits a JSON render context for a GET page.
func writeRender(w http.ResponseWriter, r *http.Request, sessions Sessions, logg *logger.Logger, data map[string]interface{}) {
	responses.WriteSuccess(w, renderContext(r.Context(), sessions, logg, data))
}

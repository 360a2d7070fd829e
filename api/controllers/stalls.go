package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/api/responses"
	"github.com/Gortyum/feriadigital/api/validators"
	"github.com/Gortyum/feriadigital/internal/stalls"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/session"
)

const myStallPath = "/mi-puesto"

// StallsList renders every stall for browsing buyers.
func StallsList(svc stalls.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{"puestos": listed})
	}
}

// StallDetail renders one stall with its product catalog.
func StallDetail(svc stalls.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stallID, err := validators.ParsePathUUID(chi.URLParam(r, "stallID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), stallID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{"puesto": detail})
	}
}

// MyStalls renders every stall the vendor runs. An empty list means nothing
// is registered yet.
func MyStalls(svc stalls.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		listed, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{"puestos": listed})
	}
}

// MyStallCreate registers a new stall for the vendor in a fair.
func MyStallCreate(svc stalls.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload stalls.CreateStallInput
		if err := validators.DecodeBody(r, &payload); err != nil {
			failRedirect(w, r, sessions, logg, err, myStallPath)
			return
		}

		if _, err := svc.Create(r.Context(), userID, payload); err != nil {
			failRedirect(w, r, sessions, logg, err, myStallPath)
			return
		}

		redirectWithFlash(w, r, sessions, logg, myStallPath, session.FlashSuccess, "Puesto registrado exitosamente")
	}
}

// MyStallUpdate moves one of the vendor's stalls to another fair or
// renumbers it.
func MyStallUpdate(svc stalls.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		stallID, err := validators.ParsePathUUID(chi.URLParam(r, "stallID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload stalls.UpdateStallInput
		if err := validators.DecodeBody(r, &payload); err != nil {
			failRedirect(w, r, sessions, logg, err, myStallPath)
			return
		}

		if _, err := svc.Update(r.Context(), userID, stallID, payload); err != nil {
			failRedirect(w, r, sessions, logg, err, myStallPath)
			return
		}

		redirectWithFlash(w, r, sessions, logg, myStallPath, session.FlashSuccess, "Puesto actualizado")
	}
}

// MyStallDelete removes one of the vendor's stalls. Stalls with products
// stay put.
func MyStallDelete(svc stalls.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		stallID, err := validators.ParsePathUUID(chi.URLParam(r, "stallID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, stallID); err != nil {
			failRedirect(w, r, sessions, logg, err, myStallPath)
			return
		}

		redirectWithFlash(w, r, sessions, logg, myStallPath, session.FlashSuccess, "Puesto eliminado")
	}
}

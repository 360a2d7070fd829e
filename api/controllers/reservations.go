package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/api/responses"
	"github.com/Gortyum/feriadigital/api/validators"
	"github.com/Gortyum/feriadigital/internal/reservations"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/session"
)

const (
	myReservationsPath       = "/mis-reservas"
	receivedReservationsPath = "/reservas-recibidas"
)

// ReservationCreate places a stock hold for the signed-in buyer.
func ReservationCreate(svc reservations.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload reservations.CreateReservationInput
		if err := validators.DecodeBody(r, &payload); err != nil {
			failRedirect(w, r, sessions, logg, err, "/buscar")
			return
		}

		if _, err := svc.Create(r.Context(), userID, payload); err != nil {
			failRedirect(w, r, sessions, logg, err, "/buscar")
			return
		}

		redirectWithFlash(w, r, sessions, logg, myReservationsPath, session.FlashSuccess, "Reserva creada exitosamente")
	}
}

// MyReservations renders the buyer's reservations, newest first.
func MyReservations(svc reservations.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		listed, err := svc.ListForBuyer(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{"reservas": listed})
	}
}

// ReservationCancel releases the buyer's hold and restores the stock.
func ReservationCancel(svc reservations.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		reservationID, err := validators.ParsePathUUID(chi.URLParam(r, "reservationID"))
		if err != nil {
			failRedirect(w, r, sessions, logg, err, myReservationsPath)
			return
		}

		if err := svc.Cancel(r.Context(), userID, reservationID); err != nil {
			failRedirect(w, r, sessions, logg, err, myReservationsPath)
			return
		}

		redirectWithFlash(w, r, sessions, logg, myReservationsPath, session.FlashSuccess, "Reserva cancelada")
	}
}

// ReceivedReservations renders the holds against the vendor's products.
func ReceivedReservations(svc reservations.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		listed, err := svc.ListForVendor(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{"reservas": listed})
	}
}

// ReservationComplete marks a hold as handed over. The stock stays taken.
func ReservationComplete(svc reservations.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		reservationID, err := validators.ParsePathUUID(chi.URLParam(r, "reservationID"))
		if err != nil {
			failRedirect(w, r, sessions, logg, err, receivedReservationsPath)
			return
		}

		if err := svc.Complete(r.Context(), userID, reservationID); err != nil {
			failRedirect(w, r, sessions, logg, err, receivedReservationsPath)
			return
		}

		redirectWithFlash(w, r, sessions, logg, receivedReservationsPath, session.FlashSuccess, "Reserva procesada")
	}
}

package controllers

import (
	"net/http"

	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/api/responses"
	"github.com/Gortyum/feriadigital/internal/stats"
	"github.com/Gortyum/feriadigital/pkg/logger"
)

// VendorStats renders the vendor's dashboard numbers.
func VendorStats(svc stats.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		summary, err := svc.ForVendor(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{"estadisticas": summary})
	}
}

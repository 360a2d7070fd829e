package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gortyum/feriadigital/api/responses"
	"github.com/Gortyum/feriadigital/api/validators"
	"github.com/Gortyum/feriadigital/internal/fairs"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/weather"
)

// FairsList renders every fair with its stall count and, for fairs that name
// a city, the current weather there. Weather misses leave the entry bare.
func FairsList(svc *fairs.Service, forecast *weather.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]map[string]interface{}, 0, len(listed))
		for _, fair := range listed {
			item := map[string]interface{}{"feria": fair}
			if fair.City != nil {
				if snap := forecast.ForCity(r.Context(), *fair.City); snap != nil {
					item["clima"] = snap
				}
			}
			items = append(items, item)
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{"ferias": items})
	}
}

// FairDetail renders one fair with its stalls and, when the fair has a city,
// the current weather there. A weather miss never blanks the page.
func FairDetail(svc *fairs.Service, forecast *weather.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fairID, err := validators.ParsePathUUID(chi.URLParam(r, "fairID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), fairID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data := map[string]interface{}{"feria": detail}
		if detail.City != nil {
			if snap := forecast.ForCity(r.Context(), *detail.City); snap != nil {
				data["clima"] = snap
			}
		}

		writeRender(w, r, sessions, logg, data)
	}
}

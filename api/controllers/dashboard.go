package controllers

import (
	"net/http"

	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/pkg/enums"
	"github.com/Gortyum/feriadigital/pkg/logger"
)

// Dashboard renders the landing context after login. Buyers and vendors get
// different navigation hints, nothing else differs here.
func Dashboard(sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := middleware.RoleFromContext(r.Context())

		sections := []string{"/ferias", "/perfil"}
		if role == enums.UserRoleVendor {
			sections = append(sections, "/mi-puesto", "/mis-productos", "/reservas-recibidas", "/estadisticas")
		} else {
			sections = append(sections, "/puestos", "/buscar", "/mis-reservas")
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{
			"pagina":    "dashboard",
			"secciones": sections,
		})
	}
}

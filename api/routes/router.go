package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gortyum/feriadigital/api/controllers"
	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/internal/auth"
	"github.com/Gortyum/feriadigital/internal/categories"
	"github.com/Gortyum/feriadigital/internal/fairs"
	"github.com/Gortyum/feriadigital/internal/products"
	"github.com/Gortyum/feriadigital/internal/reservations"
	"github.com/Gortyum/feriadigital/internal/stalls"
	"github.com/Gortyum/feriadigital/internal/stats"
	"github.com/Gortyum/feriadigital/internal/users"
	"github.com/Gortyum/feriadigital/pkg/config"
	"github.com/Gortyum/feriadigital/pkg/db"
	"github.com/Gortyum/feriadigital/pkg/enums"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/metrics"
	"github.com/Gortyum/feriadigital/pkg/redis"
	"github.com/Gortyum/feriadigital/pkg/weather"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        redis.Pinger
	Sessions     controllers.Sessions
	HTTPMetrics  *metrics.HTTPMetrics
	Metrics      http.Handler
	Users        *users.Repository
	Auth         auth.Service
	Fairs        *fairs.Service
	Forecast     *weather.Service
	Stalls       stalls.Service
	Categories   *categories.Repository
	Products     products.Service
	Reservations reservations.Service
	Stats        stats.Service
}

// NewRouter assembles the full route tree: public auth pages, the
// session-gated area, and the vendor-only area on top of that.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	sessions := deps.Sessions

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	r.Get("/login", controllers.LoginPage(logg))
	r.Post("/login", controllers.Login(deps.Auth, sessions, logg))
	r.Get("/registro", controllers.RegisterPage(logg))
	r.Post("/registro", controllers.Register(deps.Auth, sessions, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessions, logg))

		r.Post("/logout", controllers.Logout(sessions, logg))
		r.Get("/dashboard", controllers.Dashboard(sessions, logg))

		r.Get("/perfil", controllers.ProfileShow(deps.Users, sessions, logg))
		r.Post("/perfil", controllers.ProfileUpdate(deps.Auth, sessions, logg))
		r.Get("/cambiar-contrasena", controllers.PasswordChangePage(sessions, logg))
		r.Post("/cambiar-contrasena", controllers.PasswordChange(deps.Auth, sessions, logg))

		r.Get("/ferias", controllers.FairsList(deps.Fairs, deps.Forecast, sessions, logg))
		r.Get("/ferias/{fairID}", controllers.FairDetail(deps.Fairs, deps.Forecast, sessions, logg))

		r.Get("/productos/{productID}", controllers.ProductDetail(deps.Products, sessions, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleBuyer, logg))

			r.Get("/puestos", controllers.StallsList(deps.Stalls, sessions, logg))
			r.Get("/puestos/{stallID}", controllers.StallDetail(deps.Stalls, sessions, logg))

			r.Get("/buscar", controllers.ProductSearch(deps.Products, deps.Categories, sessions, logg))

			r.Post("/reservas", controllers.ReservationCreate(deps.Reservations, sessions, logg))
			r.Get("/mis-reservas", controllers.MyReservations(deps.Reservations, sessions, logg))
			r.Post("/reservas/{reservationID}/cancelar", controllers.ReservationCancel(deps.Reservations, sessions, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleVendor, logg))

			r.Get("/mi-puesto", controllers.MyStalls(deps.Stalls, sessions, logg))
			r.Post("/mi-puesto", controllers.MyStallCreate(deps.Stalls, sessions, logg))
			r.Post("/mi-puesto/{stallID}/editar", controllers.MyStallUpdate(deps.Stalls, sessions, logg))
			r.Post("/mi-puesto/{stallID}/eliminar", controllers.MyStallDelete(deps.Stalls, sessions, logg))

			r.Get("/mis-productos", controllers.MyProducts(deps.Products, deps.Categories, sessions, logg))
			r.Post("/productos", controllers.ProductCreate(deps.Products, sessions, logg))
			r.Post("/productos/{productID}/editar", controllers.ProductUpdate(deps.Products, sessions, logg))
			r.Post("/productos/{productID}/eliminar", controllers.ProductDelete(deps.Products, sessions, logg))

			r.Get("/reservas-recibidas", controllers.ReceivedReservations(deps.Reservations, sessions, logg))
			r.Post("/reservas-recibidas/{reservationID}/procesar", controllers.ReservationComplete(deps.Reservations, sessions, logg))

			r.Get("/estadisticas", controllers.VendorStats(deps.Stats, sessions, logg))
		})
	})

	return r
}

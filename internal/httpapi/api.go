// Package httpapi is the request boundary: routing, session guards, and
// the translation of domain errors into HTTP statuses. No business rule
// lives here.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frotafleet/frotafleet/internal/common/config"
	"github.com/frotafleet/frotafleet/internal/common/logger"
	"github.com/frotafleet/frotafleet/internal/common/metrics"
	"github.com/frotafleet/frotafleet/internal/common/middleware"
	"github.com/frotafleet/frotafleet/internal/company"
	"github.com/frotafleet/frotafleet/internal/rental"
	"github.com/frotafleet/frotafleet/internal/transfer"
	"github.com/frotafleet/frotafleet/internal/user"
	"github.com/frotafleet/frotafleet/internal/vehicle"
)

// API bundles the services behind the HTTP handlers.
type API struct {
	cfg       *config.Config
	log       logger.Logger
	users     *user.Service
	vehicles  *vehicle.Service
	rentals   *rental.Service
	companies *company.Service
	transfer  *transfer.Service
}

func NewAPI(
	cfg *config.Config,
	log logger.Logger,
	users *user.Service,
	vehicles *vehicle.Service,
	rentals *rental.Service,
	companies *company.Service,
	transferSvc *transfer.Service,
) *API {
	return &API{
		cfg:       cfg,
		log:       log,
		users:     users,
		vehicles:  vehicles,
		rentals:   rentals,
		companies: companies,
		transfer:  transferSvc,
	}
}

// Router builds the full route tree with its middleware chain.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(a.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	loginLimiter := middleware.NewTokenBucket(a.cfg.Server.LoginBurst, a.cfg.Server.LoginPerSec)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(loginLimiter))
		r.Post("/login", a.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.requireSession)

		r.Post("/logout", a.handleLogout)
		r.Put("/profile", a.handleUpdateProfile)

		r.Get("/vehicles", a.handleVehicleBoard)
		r.Post("/vehicles", a.handleAddVehicle)
		r.Get("/vehicles/{id}", a.handleGetVehicle)
		r.Put("/vehicles/{id}", a.handleEditVehicle)
		r.Delete("/vehicles/{id}", a.handleDeleteVehicle)
		r.Post("/vehicles/{id}/rent", a.handleRent)

		r.Get("/rentals", a.handleActiveRentals)
		r.Post("/rentals/{id}/finish", a.handleFinishRental)
		r.Get("/rentals/history", a.handleHistory)

		r.Get("/companies", a.handleListCompanies)

		r.Post("/import/vehicles", a.handleImportVehicles)
		r.Get("/export/{kind}", a.handleExport)

		r.Group(func(r chi.Router) {
			r.Use(a.requireAdmin)
			r.Post("/companies", a.handleRegisterCompany)
			r.Get("/users", a.handleListUsers)
			r.Post("/users", a.handleCreateUser)
			r.Put("/users/{id}", a.handleUpdateUser)
			r.Delete("/users/{id}", a.handleDeleteUser)
		})
	})

	return r
}

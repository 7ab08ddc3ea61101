package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/vehicle"
)

// handleVehicleBoard is the fleet overview: the tenant's vehicles with
// their derived Free/Rented state, filtered by plate substring.
func (a *API) handleVehicleBoard(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	rows, err := a.rentals.Board(r.Context(), sess.Tenant, r.URL.Query().Get("plate"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, rows)
}

func (a *API) handleAddVehicle(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	var in vehicle.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.respondError(w, r, apperr.Validationf("invalid request body"))
		return
	}
	v, err := a.vehicles.Add(r.Context(), sess.Tenant, in)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, v)
}

func (a *API) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	v, err := a.vehicles.Get(r.Context(), sess.Tenant, chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, v)
}

func (a *API) handleEditVehicle(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	var in vehicle.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.respondError(w, r, apperr.Validationf("invalid request body"))
		return
	}
	v, err := a.vehicles.Edit(r.Context(), sess.Tenant, chi.URLParam(r, "id"), in)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, v)
}

// handleDeleteVehicle goes through the rental service: deletion is
// guarded by the lifecycle (no delete while rented).
func (a *API) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	if err := a.rentals.DeleteVehicle(r.Context(), sess.Tenant, chi.URLParam(r, "id")); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/common/metrics"
	"github.com/frotafleet/frotafleet/internal/rental"
)

func (a *API) handleRent(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	var in rental.RentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.respondError(w, r, apperr.Validationf("invalid request body"))
		return
	}
	rt, err := a.rentals.Rent(r.Context(), sess.Tenant, chi.URLParam(r, "id"), in)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	metrics.RentalsOpened.WithLabelValues(sess.Tenant).Inc()
	a.log.Infof("vehicle %s rented to %q (tenant %q)", rt.VehicleID, rt.Holder, sess.Tenant)
	a.respondJSON(w, http.StatusCreated, rt)
}

func (a *API) handleActiveRentals(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	q := r.URL.Query()
	rows, err := a.rentals.ListActive(r.Context(), sess.Tenant, q.Get("plate"), q.Get("holder"), time.Now())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, rows)
}

func (a *API) handleFinishRental(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	rt, err := a.rentals.Finish(r.Context(), sess.Tenant, chi.URLParam(r, "id"), time.Now())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	metrics.RentalsClosed.WithLabelValues(sess.Tenant).Inc()
	a.log.Infof("rental %s finished (tenant %q)", rt.ID, sess.Tenant)
	a.respondJSON(w, http.StatusOK, rt)
}

func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	q := r.URL.Query()
	rows, err := a.rentals.History(r.Context(), sess.Tenant, q.Get("from"), q.Get("to"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, rows)
}

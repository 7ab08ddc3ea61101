package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/company"
)

// handleListCompanies serves the shared counterparty directory; it is
// deliberately not tenant-scoped.
func (a *API) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := a.companies.List(r.Context())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, companies)
}

func (a *API) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	var in company.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.respondError(w, r, apperr.Validationf("invalid request body"))
		return
	}
	c, err := a.companies.Register(r.Context(), in)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, c)
}

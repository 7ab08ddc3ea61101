package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/user"
)

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	users, err := a.users.List(r.Context(), sess)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, users)
}

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	var in user.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.respondError(w, r, apperr.Validationf("invalid request body"))
		return
	}
	u, err := a.users.Create(r.Context(), sess, in)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, u)
}

func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	var in user.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.respondError(w, r, apperr.Validationf("invalid request body"))
		return
	}
	u, err := a.users.Update(r.Context(), sess, chi.URLParam(r, "id"), in)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, u)
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	if err := a.users.Delete(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/common/auth"
	"github.com/frotafleet/frotafleet/internal/user"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	Tenant    string    `json:"tenant"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, r, apperr.Validationf("invalid request body"))
		return
	}

	sess, err := a.users.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	token, expiresAt, err := auth.GenerateSessionToken(a.cfg.Auth, sess)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	a.log.Infof("login ok for %q (tenant %q)", sess.Login, sess.Tenant)
	a.respondJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Login:     sess.Login,
		Role:      sess.Role,
		Tenant:    sess.Tenant,
	})
}

// handleLogout exists for client symmetry; session tokens are stateless
// and simply get discarded client-side.
func (a *API) handleLogout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	var in user.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.respondError(w, r, apperr.Validationf("invalid request body"))
		return
	}
	u, err := a.users.UpdateProfile(r.Context(), sess, in)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, u)
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
)

func (a *API) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Errorf("encode response: %v", err)
	}
}

// respondError converts a domain error into its HTTP status. Internal
// errors are logged and reported without detail.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		a.log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		msg = "internal error"
	}
	a.respondJSON(w, status, map[string]string{"error": msg})
}

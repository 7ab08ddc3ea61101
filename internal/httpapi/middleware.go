package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/opentracing/opentracing-go"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/common/auth"
	"github.com/frotafleet/frotafleet/internal/common/metrics"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionFrom returns the authenticated session stored by
// requireSession.
func SessionFrom(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	return s, ok
}

// requireSession parses the Bearer token and stores the session in the
// request context. Every tenant-scoped handler reads the tenant from
// there and nowhere else.
func (a *API) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			a.respondError(w, r, fmt.Errorf("%w: missing bearer token", apperr.ErrUnauthenticated))
			return
		}
		sess, err := auth.ParseSessionToken(a.cfg.Auth, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.respondError(w, r, fmt.Errorf("%w: %s", apperr.ErrUnauthenticated, err))
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin additionally checks the session role.
func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r.Context())
		if !ok {
			a.respondError(w, r, fmt.Errorf("%w: no session", apperr.ErrUnauthenticated))
			return
		}
		if !sess.IsAdmin() {
			a.respondError(w, r, apperr.Forbiddenf("admin role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// observe wraps every request with a tracing span, a structured access
// log line, and the request counter.
func (a *API) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span, ctx := opentracing.StartSpanFromContext(r.Context(), "http.request")
		defer span.Finish()
		span.SetTag("http.method", r.Method)
		span.SetTag("http.url", r.URL.Path)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		status := ww.Status()
		span.SetTag("http.status_code", status)
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		a.log.WithFields(map[string]interface{}{
			"method": r.Method,
			"route":  route,
			"status": status,
		}).Debugf("%s %s -> %d", r.Method, r.URL.Path, status)
	})
}

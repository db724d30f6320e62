package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akarpov87/custauth/internal/common"
	"github.com/akarpov87/custauth/internal/server/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// IdentityFromContext returns the customer identity injected by the bearer
// middleware, if the request passed it.
func IdentityFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(identityContextKey).(string)
	return identity, ok
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogging tags every request with a request ID and logs method,
// path, status, and duration on completion.
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		s.log.Info(r.Context(), "request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// requireAuth verifies the bearer session token and injects the identity
// into the request context. Any verification failure is a 401; token
// contents are never echoed back.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.respond(w, r, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}

		identity, err := s.issuer.Verify(token, auth.KindSession)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

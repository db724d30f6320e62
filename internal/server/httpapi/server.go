// Package httpapi exposes the identity service over HTTP. Routing is done
// with gorilla/mux; every response uses the same JSON envelope.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/akarpov87/custauth/internal/logging"
	"github.com/akarpov87/custauth/internal/server/auth"
	"github.com/akarpov87/custauth/internal/server/services"
)

// Server owns the router and the underlying http.Server.
type Server struct {
	identity *services.IdentityService
	issuer   *auth.Issuer
	log      logging.Logger
	httpSrv  *http.Server
}

func NewServer(addr string, identity *services.IdentityService, issuer *auth.Issuer, log logging.Logger) *Server {
	s := &Server{
		identity: identity,
		issuer:   issuer,
		log:      log,
	}

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogging)

	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/forget-password", s.handleForgetPassword).Methods(http.MethodPost)
	r.HandleFunc("/reset-password/{token}", s.handleResetPassword).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	protected.HandleFunc("/auth", s.handleAuth).Methods(http.MethodGet)

	return r
}

// Handler returns the configured router. Tests drive it directly.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) ListenAndServe() error {
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type registerRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Profile  map[string]string `json:"profile"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string          `json:"token"`
	Customer customerPayload `json:"customer"`
}

type forgetPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		s.respond(w, r, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	customer, err := s.identity.Register(r.Context(), req.Email, req.Password, req.Profile)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusCreated, "registered", toCustomerPayload(customer))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		s.respond(w, r, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	res, err := s.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, "logged in", loginResponse{
		Token:    res.Token,
		Customer: toCustomerPayload(res.Customer),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		s.respond(w, r, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	if err := s.identity.Logout(r.Context(), identity); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, "logged out", nil)
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		s.respond(w, r, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	customer, err := s.identity.Authenticate(r.Context(), identity)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, "authenticated", toCustomerPayload(customer))
}

func (s *Server) handleForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req forgetPasswordRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" {
		s.respond(w, r, http.StatusBadRequest, "email is required", nil)
		return
	}

	if err := s.identity.RequestPasswordReset(r.Context(), req.Email); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, "password reset email sent", nil)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req resetPasswordRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Password == "" {
		s.respond(w, r, http.StatusBadRequest, "password is required", nil)
		return
	}

	if err := s.identity.CompletePasswordReset(r.Context(), token, req.Password); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, "password updated", nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, "ok", nil)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/akarpov87/custauth/internal/common"
	"github.com/akarpov87/custauth/internal/server/models"
)

// envelope is the uniform response shape. Data is omitted when nil.
type envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// customerPayload is the wire form of a customer. The password digest is
// stripped before objects reach this layer, so it has no field here.
type customerPayload struct {
	Email     string            `json:"email"`
	Profile   map[string]string `json:"profile,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func toCustomerPayload(c *models.Customer) customerPayload {
	return customerPayload{
		Email:     c.Email,
		Profile:   c.Profile,
		CreatedAt: c.CreatedAt,
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(envelope{Status: code < 400, Message: message, Data: data}); err != nil {
		s.log.Error(r.Context(), "error writing response", "error", err)
	}
}

// respondError maps service sentinels to status codes. Collaborator error
// text never reaches the client; only the fixed messages below do.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		s.respond(w, r, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, common.ErrorUnauthorized):
		s.respond(w, r, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, common.ErrTokenExpired):
		s.respond(w, r, http.StatusUnauthorized, "token expired", nil)
	case errors.Is(err, common.ErrInvalidToken):
		s.respond(w, r, http.StatusUnauthorized, "invalid token", nil)
	case errors.Is(err, common.ErrorNotFound):
		s.respond(w, r, http.StatusNotFound, "not found", nil)
	default:
		s.log.Error(r.Context(), "unhandled service error", "error", err)
		s.respond(w, r, http.StatusInternalServerError, "internal server error", nil)
	}
}

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON request body into dst, capping its size. A false
// return means the 400 response has already been written.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respond(w, r, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}

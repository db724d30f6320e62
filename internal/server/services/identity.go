// Package services contains server-side business logic. This file implements
// IdentityService, which orchestrates registration, login, logout, and the
// password-reset flow over the credential store, token store, token issuer,
// and email sender.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/akarpov87/custauth/internal/common"
	"github.com/akarpov87/custauth/internal/cryptox"
	"github.com/akarpov87/custauth/internal/server/auth"
	"github.com/akarpov87/custauth/internal/server/config"
	"github.com/akarpov87/custauth/internal/server/email"
	"github.com/akarpov87/custauth/internal/server/models"
	"github.com/akarpov87/custauth/internal/server/repositories/repomanager"
)

// LoginResult bundles the session token with the authenticated customer.
type LoginResult struct {
	Token    string
	Customer *models.Customer
}

// IdentityService implements the account and token lifecycle:
//   - Register: guarded create, digest stored in place of the plaintext
//   - Login/Logout: session token issuance and revocation bookkeeping
//   - Authenticate: identity-to-account resolution for verified callers
//   - RequestPasswordReset/CompletePasswordReset: the reset sub-flow
//
// Every operation is a short synchronous sequence of collaborator calls with
// no locking of its own; per-identity consistency comes from the stores'
// atomic keyed writes.
type IdentityService struct {
	customers     customersRepo
	tokens        tokensRepo
	issuer        *auth.Issuer
	sender        email.Sender
	resetLinkBase string
	resetValidity time.Duration
}

// customersRepo and tokensRepo mirror the repository contracts; declared
// locally so tests can substitute fakes without importing the packages.
type customersRepo interface {
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	UpdatePassword(ctx context.Context, email, passwordDigest string) error
}

type tokensRepo interface {
	Put(ctx context.Context, identity string, kind auth.Kind, token string) error
	Delete(ctx context.Context, identity string, kind auth.Kind) error
}

// NewIdentityService constructs an IdentityService from the repository
// manager, issuer, email sender, and server config.
func NewIdentityService(m repomanager.RepositoryManager, issuer *auth.Issuer, sender email.Sender, cfg *config.Config) *IdentityService {
	return &IdentityService{
		customers:     m.Customers(),
		tokens:        m.Tokens(),
		issuer:        issuer,
		sender:        sender,
		resetLinkBase: cfg.ResetLinkBase,
		resetValidity: cfg.ResetTokenValidity,
	}
}

// Register creates a new account. A taken email yields
// common.ErrorAlreadyExists; the returned customer never carries the digest.
func (s *IdentityService) Register(ctx context.Context, emailAddr, password string, profile map[string]string) (*models.Customer, error) {
	digest, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	customer := &models.Customer{
		Email:          emailAddr,
		PasswordDigest: digest,
		Profile:        profile,
	}

	created, err := s.customers.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	return created.Public(), nil
}

// Login verifies the password against the stored digest and, on success,
// issues a session token and records it as the current one. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *IdentityService) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	customer, err := s.customers.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword(password, customer.PasswordDigest) {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.issuer.Issue(emailAddr, auth.KindSession)
	if err != nil {
		return nil, common.ErrorInternal
	}

	// Last write wins: a concurrent login for the same identity simply
	// replaces the recorded token. Both issued tokens stay valid until
	// their own expiry since verification never consults the store.
	if err := s.tokens.Put(ctx, emailAddr, auth.KindSession, token); err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{Token: token, Customer: customer.Public()}, nil
}

// Logout drops the session token record for the identity. Logging out
// without an active session is not an error.
func (s *IdentityService) Logout(ctx context.Context, identity string) error {
	if err := s.tokens.Delete(ctx, identity, auth.KindSession); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// Authenticate resolves a verified identity to its account. The caller is
// expected to have checked the bearer token's signature and expiry already;
// no token state is consulted here, so a logout does not revoke identities
// carried by still-unexpired tokens.
func (s *IdentityService) Authenticate(ctx context.Context, identity string) (*models.Customer, error) {
	customer, err := s.customers.GetByEmail(ctx, identity)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return customer.Public(), nil
}

// RequestPasswordReset issues a reset token for the account, records it,
// and hands the rendered reset email to the sender.
func (s *IdentityService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	if _, err := s.customers.GetByEmail(ctx, emailAddr); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}

	token, err := s.issuer.Issue(emailAddr, auth.KindReset)
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.tokens.Put(ctx, emailAddr, auth.KindReset, token); err != nil {
		return common.ErrorInternal
	}

	msg, err := email.RenderPasswordReset(emailAddr, s.resetLinkBase, token, s.resetValidity)
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return common.ErrorInternal
	}

	return nil
}

// CompletePasswordReset verifies the reset token, replaces the account's
// password digest, and drops the reset record. Invalid or expired tokens
// propagate as common.ErrInvalidToken / common.ErrTokenExpired and leave
// the password untouched. A failure between the password write and the
// record delete leaves a stale reset record, which is harmless: the token
// it points at still dies by its own expiry.
func (s *IdentityService) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	identity, err := s.issuer.Verify(token, auth.KindReset)
	if err != nil {
		return err
	}

	if _, err := s.customers.GetByEmail(ctx, identity); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	digest, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.customers.UpdatePassword(ctx, identity, digest); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if err := s.tokens.Delete(ctx, identity, auth.KindReset); err != nil {
		return common.ErrorInternal
	}

	return nil
}

// Package customers declares the credential-store contract: one record per
// account, keyed by email, holding the password digest and profile fields.
package customers

import (
	"context"

	"github.com/akarpov87/custauth/internal/server/models"
)

// Repository defines the operations the identity service needs from
// credential storage. No delete operation is exposed: accounts are never
// removed by this service.
type Repository interface {
	// Create persists a new customer. The record's password field must
	// already be the digest, never the plaintext. Returns
	// common.ErrorAlreadyExists when a record for the email is present;
	// the store's own conditional write makes this atomic, so of two
	// concurrent creates for one email exactly one succeeds.
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)

	// GetByEmail returns the customer or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)

	// UpdatePassword overwrites only the password digest.
	// Returns common.ErrorNotFound when the email is absent.
	UpdatePassword(ctx context.Context, email, passwordDigest string) error
}

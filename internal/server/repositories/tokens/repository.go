// Package tokens declares the token-store contract: at most one live record
// per (customer, kind) pair, recording the most recently issued token.
//
// The store never validates tokens. Signature and expiry checks are
// self-contained in the issuer, so an expired-but-undeleted record is
// harmless and no garbage collection runs here.
package tokens

import (
	"context"

	"github.com/akarpov87/custauth/internal/server/auth"
)

// Repository supports the logout and reset-completion flows. No
// lookup-by-token operation exists: the records are revocation bookkeeping,
// not an authority on validity.
type Repository interface {
	// Put upserts the token for (identity, kind), overwriting any prior
	// token of that kind. Concurrent puts resolve last-write-wins.
	Put(ctx context.Context, identity string, kind auth.Kind, token string) error

	// Delete removes the record if present. Deleting a non-existent
	// record is not an error.
	Delete(ctx context.Context, identity string, kind auth.Kind) error
}

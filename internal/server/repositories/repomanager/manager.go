// Package repomanager selects and wires the storage backend behind the
// credential and token stores.
package repomanager

import (
	"context"

	"github.com/akarpov87/custauth/internal/server/repositories/customers"
	"github.com/akarpov87/custauth/internal/server/repositories/tokens"
)

// RepositoryManager hands out the two repositories backed by one storage
// engine. The engine is a plain keyed store: no transactions span the
// customers and tokens tables, and the service layer is written to
// tolerate that.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Customers() customers.Repository
	Tokens() tokens.Repository
	Close() error
}

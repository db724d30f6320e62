package tokens

import (
	"context"
	"fmt"

	"github.com/akarpov87/custauth/internal/dbx"
	"github.com/akarpov87/custauth/internal/server/auth"
)

// PostgresRepository keeps token records in the tokens table, with a
// composite primary key (customer_email, kind) backing the upsert.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, identity string, kind auth.Kind, token string) error {
	query := `
		INSERT INTO tokens (customer_email, kind, token)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_email, kind) DO UPDATE SET token = EXCLUDED.token
	`
	if _, err := r.db.ExecContext(ctx, query, identity, string(kind), token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, identity string, kind auth.Kind) error {
	query := `
		DELETE FROM tokens
		WHERE customer_email = $1 AND kind = $2
	`
	if _, err := r.db.ExecContext(ctx, query, identity, string(kind)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

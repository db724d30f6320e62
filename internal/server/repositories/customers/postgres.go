package customers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akarpov87/custauth/internal/common"
	"github.com/akarpov87/custauth/internal/dbx"
	"github.com/akarpov87/custauth/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository stores customers in the customers table over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx). Profile fields live in a jsonb column.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	profile, err := json.Marshal(customer.Profile)
	if err != nil {
		return nil, fmt.Errorf("error encoding profile: %w", err)
	}

	query := `
		INSERT INTO customers (email, password_digest, profile)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		customer.Email, customer.PasswordDigest, profile).Scan(&customer.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return customer, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	query := `
		SELECT email, password_digest, profile, created_at
		FROM customers
		WHERE email = $1
	`
	customer := &models.Customer{}
	var profile []byte
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&customer.Email, &customer.PasswordDigest, &profile, &customer.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(profile, &customer.Profile); err != nil {
		return nil, fmt.Errorf("error decoding profile: %w", err)
	}

	return customer, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, email, passwordDigest string) error {
	query := `
		UPDATE customers
		SET password_digest = $2
		WHERE email = $1
	`
	result, err := r.db.ExecContext(ctx, query, email, passwordDigest)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akarpov87/custauth/internal/server/migrations"
	"github.com/akarpov87/custauth/internal/server/repositories/customers"
	"github.com/akarpov87/custauth/internal/server/repositories/tokens"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	customers customers.Repository
	tokens    tokens.Repository
}

// NewPostgresRepositoryManager opens the database and runs pending
// migrations before handing out repositories.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		customers: customers.NewPostgresRepository(db),
		tokens:    tokens.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Customers() customers.Repository {
	return m.customers
}

func (m *PostgresRepositoryManager) Tokens() tokens.Repository {
	return m.tokens
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

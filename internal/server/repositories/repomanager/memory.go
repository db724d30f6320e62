package repomanager

import (
	"context"

	"github.com/akarpov87/custauth/internal/server/repositories/customers"
	"github.com/akarpov87/custauth/internal/server/repositories/tokens"
)

type MemoryRepositoryManager struct {
	customers customers.Repository
	tokens    tokens.Repository
}

func NewMemoryRepositoryManager() RepositoryManager {
	return &MemoryRepositoryManager{
		customers: customers.NewMemoryRepository(),
		tokens:    tokens.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Customers() customers.Repository {
	return m.customers
}

func (m *MemoryRepositoryManager) Tokens() tokens.Repository {
	return m.tokens
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}

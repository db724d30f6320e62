package customers

import (
	"context"
	"sync"
	"time"

	"github.com/akarpov87/custauth/internal/common"
	"github.com/akarpov87/custauth/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-process store, used in tests and
// for running the service without external storage. The mutex gives the
// same create-once guarantee the conditional writes give the real backends.
type MemoryRepository struct {
	mu        sync.Mutex
	customers map[string]models.Customer
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{customers: make(map[string]models.Customer)}
}

func (r *MemoryRepository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	customer.CreatedAt = time.Now().UTC()
	r.customers[customer.Email] = *customer

	return customer, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[email]
	if !ok {
		return nil, common.ErrorNotFound
	}

	return &customer, nil
}

func (r *MemoryRepository) UpdatePassword(ctx context.Context, email, passwordDigest string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[email]
	if !ok {
		return common.ErrorNotFound
	}

	customer.PasswordDigest = passwordDigest
	r.customers[email] = customer

	return nil
}

package tokens

import (
	"context"
	"sync"

	"github.com/akarpov87/custauth/internal/server/auth"
	"github.com/akarpov87/custauth/internal/server/models"
)

type recordKey struct {
	identity string
	kind     auth.Kind
}

// MemoryRepository is the in-process token store used in tests and for
// running the service without external storage.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[recordKey]models.TokenRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[recordKey]models.TokenRecord)}
}

func (r *MemoryRepository) Put(ctx context.Context, identity string, kind auth.Kind, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[recordKey{identity, kind}] = models.TokenRecord{
		CustomerEmail: identity,
		Kind:          string(kind),
		Token:         token,
	}
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, identity string, kind auth.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, recordKey{identity, kind})
	return nil
}

// Current returns the stored token for (identity, kind), if any. Only tests
// use it; the service itself never reads tokens back.
func (r *MemoryRepository) Current(identity string, kind auth.Kind) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[recordKey{identity, kind}]
	return rec.Token, ok
}

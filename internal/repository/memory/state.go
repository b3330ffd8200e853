package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

var _ model.StateStore = (*StateRepository)(nil)

// StateRepository is an in-memory state store. Safe for concurrent access.
// State does not survive the process.
type StateRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStateRepository creates an empty in-memory state store.
func NewStateRepository() *StateRepository {
	return &StateRepository{values: make(map[string]string)}
}

func (r *StateRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return "", model.ErrNotFound
	}
	return v, nil
}

func (r *StateRepository) PutAll(ctx context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	maps.Copy(r.values, values)
	return nil
}

func (r *StateRepository) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

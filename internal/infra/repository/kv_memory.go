package repository

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// KVMemoryRepository keeps entries in process memory. Used by tests and
// by STORE_DRIVER=memory for local runs.
type KVMemoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewKVMemoryRepository() *KVMemoryRepository {
	return &KVMemoryRepository{
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
}

func (r *KVMemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(key)
	if !ok {
		return nil, booking.ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (r *KVMemoryRepository) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = r.now().Add(ttl)
	}
	r.entries[key] = e
	return nil
}

func (r *KVMemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
	return nil
}

func (r *KVMemoryRepository) Take(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(key)
	if !ok {
		return nil, booking.ErrNotFound
	}
	delete(r.entries, key)
	return e.value, nil
}

func (r *KVMemoryRepository) lookup(key string) (memoryEntry, bool) {
	e, ok := r.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		delete(r.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

// Compile-time check
var _ booking.KeyValueStore = (*KVMemoryRepository)(nil)

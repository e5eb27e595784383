package booking

import (
	"context"
	"time"
)

// KeyValueStore is the durable store behind carts and the completed
// booking record. Get returns ErrNotFound for missing or expired keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Take reads and deletes key in one step.
	Take(ctx context.Context, key string) ([]byte, error)
}

// MemberOverrideRepository yields per member pricing and eligibility
// overrides keyed by service variation id.
type MemberOverrideRepository interface {
	ListOverrides(ctx context.Context) (map[string][]MemberAssignment, error)
}

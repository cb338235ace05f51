package store

import "context"

// KV is the durable flat key/value store backing all session state.
// Reads and writes are synchronous; writes are best-effort with no
// transaction spanning multiple keys.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, overwriting any prior value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every session key.
	Clear(ctx context.Context) error
	// Close releases underlying resources.
	Close() error
}

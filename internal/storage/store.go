// Package storage implements the persistent key-value store backing the
// query and auth layers. Values are whole serialized collections: every
// mutating caller reads a collection in full, rewrites it in memory and
// writes it back in full, so the unit of atomicity is one collection per
// call. The store is safe within a single process only; concurrent writers
// from other processes are last-writer-wins with no detection.
package storage

// Reserved key prefixes and keys. Data collections live under the "lb:"
// namespace; auth and bootstrap state use dedicated keys so they can never
// collide with a caller-chosen collection name.
const (
	keyPrefix = "lb:"

	// SessionKey holds the single current session, if any.
	SessionKey = "lb:auth.session"

	// AttemptsKey holds sign-in failure counters for the limiter.
	AttemptsKey = "lb:auth.attempts"

	// InitializedKey marks that the one-time seed has run.
	InitializedKey = "lb:meta.initialized"
)

// CollectionKey returns the namespaced storage key for a collection name.
// Any string is accepted; unknown names simply read as empty collections.
func CollectionKey(name string) string {
	return keyPrefix + name
}

// Store is a synchronous key-value store. Get returns false when the key is
// absent; Set persists immediately so a subsequent Get in the same process
// observes the write. Delete of an absent key is a no-op.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte) error
	Delete(key string)
}

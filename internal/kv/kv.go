// Package kv provides the local durable key/value storage the offline queue
// persists itself into. The contract is a synchronous string-blob store
// scoped to a single device; no cross-device sharing or locking exists.
package kv

// Store defines the interface for durable local key/value persistence
//
//go:generate mockgen -source=kv.go -destination=../mocks/kv.go -package=mocks -mock_names=Store=MockKVStore
type Store interface {
	// Get returns the value stored under key, or ok=false when absent.
	// An unreadable value is reported as absent rather than as an error;
	// callers treat corruption as missing data.
	Get(key string) (value string, ok bool)

	// Set durably stores value under key, replacing any previous value.
	// The write is atomic: a concurrent reload sees either the old or the
	// new blob, never a partial one.
	Set(key, value string) error

	// Remove erases the value stored under key. Removing an absent key is
	// not an error.
	Remove(key string) error
}

// Package storage provides the raw key-value backends behind runtime storage
// and the process-wide backend that unhashed storage calls go through.
package storage

import (
	"context"
	"sync"
)

// Backend is a raw key-value store.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the value under key and whether it exists.
	Get(ctx context.Context, key []byte) ([]byte, bool, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key []byte) error
}

var (
	mu      sync.RWMutex
	current Backend = NewMemoryBackend()
)

// Current returns the backend storage calls are routed to.
func Current() Backend {
	mu.RLock()
	defer mu.RUnlock()

	return current
}

// SetBackend installs b as the current backend and returns the previous one.
func SetBackend(b Backend) Backend {
	mu.Lock()
	defer mu.Unlock()

	prev := current
	current = b

	return prev
}

// WithBackend runs fn with b installed, restoring the previous backend afterwards.
// Calls are not isolated from concurrent users of the current backend.
func WithBackend(b Backend, fn func()) {
	prev := SetBackend(b)
	defer SetBackend(prev)

	fn()
}

// internal/pkg/locker/locker.go
package locker

import (
	"sync"

	"github.com/ldplus/collsync/internal/core/ports"
)

// KeyedLocker is an in-process try-lock keyed by an arbitrary string,
// typically a collection ID. Locks exist only in process memory and do
// not survive a restart: a crash mid-run simply leaves the key free on
// the next start.
type KeyedLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// Statically assert that *KeyedLocker implements the Locker interface.
var _ ports.Locker = (*KeyedLocker)(nil)

// New creates an empty keyed locker.
func New() *KeyedLocker {
	return &KeyedLocker{held: make(map[string]struct{})}
}

// TryAcquire takes the lock for key if it is free and reports whether it
// was acquired. It never blocks.
func (l *KeyedLocker) TryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return false
	}
	l.held[key] = struct{}{}
	return true
}

// Release frees the lock for key. Releasing an unheld key is a no-op so
// callers can release unconditionally in a defer.
func (l *KeyedLocker) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}

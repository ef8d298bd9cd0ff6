// internal/core/ports/locker.go
package ports

// Locker provides keyed try-acquire/release mutual exclusion. The
// in-process implementation guarantees at most one holder per key per
// process lifetime; a distributed lease can replace it behind this
// interface without touching the services.
type Locker interface {
	// TryAcquire attempts to take the lock for key without blocking and
	// reports whether it was acquired.
	TryAcquire(key string) bool

	// Release frees the lock for key. Releasing an unheld key is a no-op.
	Release(key string)
}

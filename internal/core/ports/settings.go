// internal/core/ports/settings.go
package ports

import "context"

// SettingsStore reads and writes the two shop-level scalar settings the
// sync core depends on. Reads happen on every run; implementations may
// cache but must serve writes-then-reads coherently.
type SettingsStore interface {
	// DefaultQuantity is the target inventory quantity applied to
	// products newly added to the tracked collection.
	DefaultQuantity(ctx context.Context) (int, error)
	SetDefaultQuantity(ctx context.Context, quantity int) error

	// ExpirationHours is the hour offset subtracted from a product's
	// expiration-date midnight when computing its cutoff. The sign is
	// meaningful.
	ExpirationHours(ctx context.Context) (int, error)
	SetExpirationHours(ctx context.Context, hours int) error
}

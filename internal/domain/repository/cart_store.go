package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
)

// CartStore owns the per-session carts. Each cart belongs exclusively to one
// cashier session; implementations must serialize mutations per session (one
// mutation in flight at a time) while keeping different sessions independent.
//
// Every method returns detached snapshots, never live cart references, so
// callers cannot corrupt a cart from outside the store.
type CartStore interface {
	// Mutate runs fn against the session's cart under the session lock.
	// The cart is created empty on first use. If fn returns an error the
	// cart is left exactly as it was; otherwise the modified cart is kept
	// and a snapshot of it is returned.
	Mutate(ctx context.Context, sessionID uuid.UUID, fn func(cart *entity.Cart) error) (*entity.Cart, error)
	// Snapshot returns a copy of the session's cart (empty if none exists)
	Snapshot(ctx context.Context, sessionID uuid.UUID) (*entity.Cart, error)
	// Clear empties the session's cart unconditionally
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// Package ports defines the contracts between the dispatch domain layer
// and infrastructure. Repositories, the notification channels, and the
// realtime event bus are all expressed here so that application handlers
// depend on interfaces only.
package ports

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate
	// unconditionally. Prefer UpdateInStatus for lifecycle transitions.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateInStatus persists the aggregate only if the stored row is
	// still in the expected status. It is a compare-and-swap: when a
	// concurrent writer moved the order first, no row matches and
	// ErrOrderModified is returned with nothing written.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUnassigned retrieves claimable orders: no courier assigned
	// and status in pending, confirmed or preparing.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)

	// GetStalePending retrieves pending orders created before the cutoff.
	// Used by the stale order cancellation job.
	GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// Claim atomically assigns the courier to the order identified by
	// orderID, provided the stored row still has no courier and is in a
	// claimable status. It reports whether this caller won the race.
	// A false result with a nil error means another courier got there
	// first; the order itself exists.
	Claim(ctx context.Context, orderID kernel.UUID, courierID kernel.UUID) (bool, error)
}

// ErrOrderModified is returned by UpdateInStatus when the stored order
// left the expected status before the write landed. Callers surface it
// as a conflict so the client can refetch and retry.
var ErrOrderModified = errors.New("order was modified by a concurrent request")

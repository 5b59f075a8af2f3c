package ports

import (
	"context"
	"time"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must persist an order's items together with the order:
// an Update replaces the entire item set atomically, so readers never
// observe an order without items.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, replacing
	// its item set. The order must exist and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders not yet DELIVERED, ordered by
	// createdAt ascending (oldest first; kitchen priority order).
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetDeliveredSince retrieves DELIVERED orders whose updatedAt lies
	// after the cutoff, ordered by updatedAt descending (most recent
	// first).
	GetDeliveredSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}

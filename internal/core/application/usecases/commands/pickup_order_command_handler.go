package commands

import (
	"context"
	"log/slog"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/core/ports"
)

// PickupOrderCommandHandler completes a rider pickup: the order becomes
// DELIVERED with the rider recorded, leaves the active board, and an
// order.delivered event is broadcast. Pickup of a non-READY order fails in
// the aggregate with an InvalidStateError.
type PickupOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *OrderLocks
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewPickupOrderCommandHandler creates a handler for rider pickups.
func NewPickupOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) PickupOrderCommandHandler {
	return PickupOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		logger:     logger.With("component", "pickup_order_handler"),
	}
}

// Handle processes the pickup command and returns the DELIVERED projection.
func (h *PickupOrderCommandHandler) Handle(ctx context.Context, cmd PickupOrderCommand) (projection.Order, error) {
	if err := cmd.Validate(); err != nil {
		return projection.Order{}, err
	}

	projected, err := mutateOrder(ctx, h.uowFactory, h.locks, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.Pickup(cmd.RiderID())
	})
	if err != nil {
		return projection.Order{}, err
	}

	h.publisher.Publish(projection.NewOrderEvent(projection.EventOrderDelivered, projected))
	h.logger.InfoContext(ctx, "order picked up",
		"order_id", projected.ID, "rider_id", cmd.RiderID())

	return projected, nil
}

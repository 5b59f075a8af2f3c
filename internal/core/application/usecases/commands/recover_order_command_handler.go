package commands

import (
	"context"
	"log/slog"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/core/ports"
)

// RecoverOrderCommandHandler returns a DELIVERED order to PENDING, clears
// its rider and broadcasts order.recovered. Recovery of a non-DELIVERED
// order fails in the aggregate with an InvalidStateError.
type RecoverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *OrderLocks
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRecoverOrderCommandHandler creates a handler for order recovery.
func NewRecoverOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RecoverOrderCommandHandler {
	return RecoverOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		logger:     logger.With("component", "recover_order_handler"),
	}
}

// Handle processes the recovery command and returns the PENDING projection.
func (h *RecoverOrderCommandHandler) Handle(ctx context.Context, cmd RecoverOrderCommand) (projection.Order, error) {
	if err := cmd.Validate(); err != nil {
		return projection.Order{}, err
	}

	projected, err := mutateOrder(ctx, h.uowFactory, h.locks, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.Recover()
	})
	if err != nil {
		return projection.Order{}, err
	}

	h.publisher.Publish(projection.NewOrderEvent(projection.EventOrderRecovered, projected))
	h.logger.InfoContext(ctx, "order recovered", "order_id", projected.ID)

	return projected, nil
}

package commands

import (
	"context"
	"log/slog"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/core/ports"
)

// AdvanceOrderStateCommandHandler moves an order along its lifecycle and
// broadcasts the change. Transition legality (single forward edges only)
// lives in the aggregate, so a request skipping states or moving backward
// fails with an InvalidTransitionError and leaves the order untouched.
type AdvanceOrderStateCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *OrderLocks
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAdvanceOrderStateCommandHandler creates a handler for state
// transitions.
func NewAdvanceOrderStateCommandHandler(
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceOrderStateCommandHandler {
	return AdvanceOrderStateCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		logger:     logger.With("component", "advance_order_state_handler"),
	}
}

// Handle processes the transition command and returns the updated
// projection. Emits order.updated after the change is committed.
func (h *AdvanceOrderStateCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStateCommand) (projection.Order, error) {
	if err := cmd.Validate(); err != nil {
		return projection.Order{}, err
	}

	projected, err := mutateOrder(ctx, h.uowFactory, h.locks, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.AdvanceState(cmd.Target())
	})
	if err != nil {
		return projection.Order{}, err
	}

	h.publisher.Publish(projection.NewOrderEvent(projection.EventOrderUpdated, projected))
	h.logger.InfoContext(ctx, "order state advanced",
		"order_id", projected.ID, "state", projected.State)

	return projected, nil
}

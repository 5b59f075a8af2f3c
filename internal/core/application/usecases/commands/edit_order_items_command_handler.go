package commands

import (
	"context"
	"log/slog"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/core/ports"
)

// EditOrderItemsCommandHandler atomically replaces an order's item set and
// broadcasts the updated projection. The aggregate rejects edits of READY
// and DELIVERED orders, and the repository persists the replacement inside
// one transaction so readers never observe an order without items.
type EditOrderItemsCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *OrderLocks
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewEditOrderItemsCommandHandler creates a handler for item edits.
func NewEditOrderItemsCommandHandler(
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) EditOrderItemsCommandHandler {
	return EditOrderItemsCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		logger:     logger.With("component", "edit_order_items_handler"),
	}
}

// Handle processes the edit command and returns the projection including
// the freshly persisted item identifiers.
func (h *EditOrderItemsCommandHandler) Handle(ctx context.Context, cmd EditOrderItemsCommand) (projection.Order, error) {
	if err := cmd.Validate(); err != nil {
		return projection.Order{}, err
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return projection.Order{}, err
	}

	projected, err := mutateOrder(ctx, h.uowFactory, h.locks, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.ReplaceItems(items)
	})
	if err != nil {
		return projection.Order{}, err
	}

	h.publisher.Publish(projection.NewOrderEvent(projection.EventOrderUpdated, projected))
	h.logger.InfoContext(ctx, "order items replaced",
		"order_id", projected.ID, "items", len(projected.Items))

	return projected, nil
}

package commands

import (
	"context"
	"log/slog"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/core/ports"
	"kitchenboard/internal/pkg/retry"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders enter the board in PENDING state with normalized items and are
// announced to all connected displays.
//
// Creation is the one mutation that is retried on transient storage
// failures: the transaction makes each attempt all-or-nothing, and a fresh
// order cannot produce a duplicate side effect the way a replayed pickup
// could.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order creation command and returns the projection of
// the new PENDING order. The order.created event is emitted only after the
// transaction commits.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (projection.Order, error) {
	if err := cmd.Validate(); err != nil {
		return projection.Order{}, err
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return projection.Order{}, err
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), items)
	if err != nil {
		return projection.Order{}, err
	}

	err = retry.Do(ctx, func() error {
		return h.persist(ctx, newOrder)
	})
	if err != nil {
		return projection.Order{}, err
	}

	projected := projection.FromOrder(newOrder)
	h.publisher.Publish(projection.NewOrderEvent(projection.EventOrderCreated, projected))
	h.logger.InfoContext(ctx, "order created", "order_id", projected.ID, "items", len(projected.Items))

	return projected, nil
}

func (h *CreateOrderCommandHandler) persist(ctx context.Context, newOrder *order.Order) error {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"errors"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/pkg/guard"
)

// ErrEditOrderItemsCommandIsNotConstructed is returned when an
// EditOrderItemsCommand was not created via its constructor.
var ErrEditOrderItemsCommandIsNotConstructed = errors.New(
	"EditOrderItemsCommand must be created via NewEditOrderItemsCommand constructor",
)

// EditOrderItemsCommand represents a request to replace an order's entire
// item set. Replacement is delete-then-insert, not a merge: existing item
// identifiers do not survive an edit. Only PENDING and IN_PROGRESS orders
// are editable.
type EditOrderItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   []ItemInput

	guard guard.ConstructorGuard
}

// NewEditOrderItemsCommand creates a command to replace an order's items.
// Validates the order id and that the replacement list is non-empty and
// well-formed.
func NewEditOrderItemsCommand(orderID kernel.UUID, items []ItemInput) (EditOrderItemsCommand, error) {
	cmd := EditOrderItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return EditOrderItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderItemsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to edit.
func (c EditOrderItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the replacement line items.
func (c EditOrderItemsCommand) Items() []ItemInput {
	return c.items
}

func (c *EditOrderItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *EditOrderItemsCommand) setItems(items []ItemInput) error {
	if _, err := buildItems(items); err != nil {
		return err
	}

	c.items = append([]ItemInput(nil), items...)
	return nil
}

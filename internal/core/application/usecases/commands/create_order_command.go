package commands

import (
	"errors"

	"kitchenboard/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a
// CreateOrderCommand was not created via its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to put a new order on the board.
// Encapsulates the requested line items; identifiers, currency and quantity
// defaults are filled in by the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand([]ItemInput{
//	    {Name: "Burger", PriceAmount: 10.99, Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	projected, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	items []ItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the item list is non-empty; per-item validation happens in
// the handler when domain items are built.
func NewCreateOrderCommand(items []ItemInput) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderCommand.setItems(items); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Items returns the requested line items.
func (c CreateOrderCommand) Items() []ItemInput {
	return c.items
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if _, err := buildItems(items); err != nil {
		return err
	}

	c.items = append([]ItemInput(nil), items...)
	return nil
}

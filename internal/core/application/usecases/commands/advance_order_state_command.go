package commands

import (
	"errors"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/guard"
)

// ErrAdvanceOrderStateCommandIsNotConstructed is returned when an
// AdvanceOrderStateCommand was not created via its constructor.
var ErrAdvanceOrderStateCommandIsNotConstructed = errors.New(
	"AdvanceOrderStateCommand must be created via NewAdvanceOrderStateCommand constructor",
)

// AdvanceOrderStateCommand represents a request to move an order one step
// forward along its lifecycle (kitchen staff advancing a card on the
// board). The target must be exactly one forward edge from the order's
// current state; legality is enforced by the aggregate.
type AdvanceOrderStateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.State

	guard guard.ConstructorGuard
}

// NewAdvanceOrderStateCommand creates a command to advance an order to the
// given target state. Validates that the order id and target state are
// well-formed; transition legality is checked against the persisted state
// by the handler.
func NewAdvanceOrderStateCommand(orderID kernel.UUID, target order.State) (AdvanceOrderStateCommand, error) {
	cmd := AdvanceOrderStateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceOrderStateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStateCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to advance.
func (c AdvanceOrderStateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested target state.
func (c AdvanceOrderStateCommand) Target() order.State {
	return c.target
}

func (c *AdvanceOrderStateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderStateCommand) setTarget(target order.State) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

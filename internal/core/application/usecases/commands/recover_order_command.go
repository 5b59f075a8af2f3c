package commands

import (
	"errors"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/pkg/guard"
)

// ErrRecoverOrderCommandIsNotConstructed is returned when a
// RecoverOrderCommand was not created via its constructor.
var ErrRecoverOrderCommandIsNotConstructed = errors.New(
	"RecoverOrderCommand must be created via NewRecoverOrderCommand constructor",
)

// RecoverOrderCommand represents a request to put a DELIVERED order back on
// the board (failed handoff, wrong pickup). Recovery clears the rider and
// returns the order to PENDING.
type RecoverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecoverOrderCommand creates a command to recover a delivered order.
func NewRecoverOrderCommand(orderID kernel.UUID) (RecoverOrderCommand, error) {
	cmd := RecoverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RecoverOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecoverOrderCommand) Validate() error {
	return c.guard.Validate(ErrRecoverOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to recover.
func (c RecoverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RecoverOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

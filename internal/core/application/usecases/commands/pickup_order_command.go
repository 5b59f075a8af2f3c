package commands

import (
	"errors"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/pkg/errs"
	"kitchenboard/internal/pkg/guard"
)

// ErrPickupOrderCommandIsNotConstructed is returned when a
// PickupOrderCommand was not created via its constructor.
var ErrPickupOrderCommandIsNotConstructed = errors.New(
	"PickupOrderCommand must be created via NewPickupOrderCommand constructor",
)

// PickupOrderCommand represents a rider's request to take a finished order
// off the board. Only READY orders can be picked up; the aggregate enforces
// this, and a second pickup of an already DELIVERED order is rejected.
type PickupOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID string

	guard guard.ConstructorGuard
}

// NewPickupOrderCommand creates a command for a rider pickup. Validates
// that the order id is well-formed and the rider id non-empty.
func NewPickupOrderCommand(orderID kernel.UUID, riderID string) (PickupOrderCommand, error) {
	cmd := PickupOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRiderID(riderID),
	); err != nil {
		return PickupOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PickupOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickupOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to pick up.
func (c PickupOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the identifier of the picking rider.
func (c PickupOrderCommand) RiderID() string {
	return c.riderID
}

func (c *PickupOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PickupOrderCommand) setRiderID(riderID string) error {
	if riderID == "" {
		return errs.NewValueIsRequiredError("riderId")
	}

	c.riderID = riderID
	return nil
}

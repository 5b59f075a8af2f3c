package commands

import (
	"errors"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/pkg/errs"
	"kitchenboard/internal/pkg/guard"
)

// ErrAttachPhotoEvidenceCommandIsNotConstructed is returned when an
// AttachPhotoEvidenceCommand was not created via its constructor.
var ErrAttachPhotoEvidenceCommandIsNotConstructed = errors.New(
	"AttachPhotoEvidenceCommand must be created via NewAttachPhotoEvidenceCommand constructor",
)

// AttachPhotoEvidenceCommand represents a request to store delivery
// evidence (an opaque blob reference) on an order. Allowed in any state.
type AttachPhotoEvidenceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	photo   string

	guard guard.ConstructorGuard
}

// NewAttachPhotoEvidenceCommand creates a command to attach photo evidence.
func NewAttachPhotoEvidenceCommand(orderID kernel.UUID, photo string) (AttachPhotoEvidenceCommand, error) {
	cmd := AttachPhotoEvidenceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPhoto(photo),
	); err != nil {
		return AttachPhotoEvidenceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachPhotoEvidenceCommand) Validate() error {
	return c.guard.Validate(ErrAttachPhotoEvidenceCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c AttachPhotoEvidenceCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Photo returns the opaque evidence reference.
func (c AttachPhotoEvidenceCommand) Photo() string {
	return c.photo
}

func (c *AttachPhotoEvidenceCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AttachPhotoEvidenceCommand) setPhoto(photo string) error {
	if photo == "" {
		return errs.NewValueIsRequiredError("photoEvidence")
	}

	c.photo = photo
	return nil
}

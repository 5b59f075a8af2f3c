package commands

import (
	"context"
	"log/slog"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/core/ports"
)

// AttachPhotoEvidenceCommandHandler stores a photo reference on an order
// and broadcasts order.photo-attached.
type AttachPhotoEvidenceCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *OrderLocks
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAttachPhotoEvidenceCommandHandler creates a handler for photo
// attachment.
func NewAttachPhotoEvidenceCommandHandler(
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AttachPhotoEvidenceCommandHandler {
	return AttachPhotoEvidenceCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		logger:     logger.With("component", "attach_photo_evidence_handler"),
	}
}

// Handle processes the attachment command and returns the updated
// projection.
func (h *AttachPhotoEvidenceCommandHandler) Handle(ctx context.Context, cmd AttachPhotoEvidenceCommand) (projection.Order, error) {
	if err := cmd.Validate(); err != nil {
		return projection.Order{}, err
	}

	projected, err := mutateOrder(ctx, h.uowFactory, h.locks, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.AttachPhotoEvidence(cmd.Photo())
	})
	if err != nil {
		return projection.Order{}, err
	}

	h.publisher.Publish(projection.NewOrderEvent(projection.EventOrderPhotoAttached, projected))
	h.logger.InfoContext(ctx, "photo evidence attached", "order_id", projected.ID)

	return projected, nil
}

package queries

import (
	"context"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/pkg/errs"
	"kitchenboard/internal/pkg/retry"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order, delivered or not.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an errs.ObjectNotFoundError when no
// order exists under the requested identifier.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (projection.Order, error) {
	if err := query.Validate(); err != nil {
		return projection.Order{}, err
	}

	var projected projection.Order

	err := retry.Do(ctx, func() error {
		var header orderRow
		result := h.db.WithContext(ctx).Raw(`
			SELECT
				id,
				state,
				rider_id,
				photo_evidence,
				created_at,
				updated_at
			FROM orders
			WHERE id = ?
		`, query.OrderID().String()).Scan(&header)
		if result.Error != nil {
			return errs.NewStorageUnavailableError("get order", result.Error)
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("orderID", query.OrderID())
		}

		projections, err := loadProjections(ctx, h.db, []orderRow{header})
		if err != nil {
			return errs.NewStorageUnavailableError("get order", err)
		}
		projected = projections[0]
		return nil
	})
	if err != nil {
		return projection.Order{}, err
	}

	return projected, nil
}

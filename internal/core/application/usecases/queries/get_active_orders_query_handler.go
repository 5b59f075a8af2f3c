package queries

import (
	"context"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/errs"
	"kitchenboard/internal/pkg/retry"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads the active board straight from the
// database. Ordering is oldest first so the board renders tickets in the
// sequence the kitchen received them.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active board queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query and returns projections of every non-delivered
// order, sorted by creation time ascending.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]projection.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var projections []projection.Order

	err := retry.Do(ctx, func() error {
		var headers []orderRow
		err := h.db.WithContext(ctx).Raw(`
			SELECT
				id,
				state,
				rider_id,
				photo_evidence,
				created_at,
				updated_at
			FROM orders
			WHERE state != ?
			ORDER BY created_at
		`, order.Delivered.String()).Scan(&headers).Error
		if err != nil {
			return errs.NewStorageUnavailableError("list active orders", err)
		}

		projections, err = loadProjections(ctx, h.db, headers)
		if err != nil {
			return errs.NewStorageUnavailableError("list active orders", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return projections, nil
}

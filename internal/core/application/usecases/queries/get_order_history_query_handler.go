package queries

import (
	"context"
	"time"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/errs"
	"kitchenboard/internal/pkg/retry"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads recently delivered orders. Results are
// sorted by update time descending so the freshest delivery leads the list.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query and returns projections of delivered orders
// whose updated_at falls inside the query's trailing window.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]projection.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-query.Window())

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
			WHERE state = ? AND updated_at >= ?
			ORDER BY updated_at DESC
		`, order.Delivered.String(), cutoff).Scan(&headers).Error
		if err != nil {
			return errs.NewStorageUnavailableError("list order history", err)
		}

		projections, err = loadProjections(ctx, h.db, headers)
		if err != nil {
			return errs.NewStorageUnavailableError("list order history", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return projections, nil
}

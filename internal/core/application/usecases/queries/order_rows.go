// Package queries contains the read side of the CQRS split: list and fetch
// operations that go straight to the database and return wire projections,
// bypassing the aggregate and the unit of work.
package queries

import (
	"context"
	"time"

	"kitchenboard/internal/core/application/projection"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderRow is the scan target for order header rows.
type orderRow struct {
	ID            string
	State         string
	RiderID       *string
	PhotoEvidence *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// itemRow is the scan target for item rows.
type itemRow struct {
	ID            string
	OrderID       string
	Name          string
	PriceAmount   decimal.Decimal
	PriceCurrency string
	Quantity      int
}

// loadProjections reads item rows for the given order headers and assembles
// full projections, preserving the header ordering. Items come back in
// their insertion order within each order.
func loadProjections(ctx context.Context, db *gorm.DB, headers []orderRow) ([]projection.Order, error) {
	projections := make([]projection.Order, 0, len(headers))
	if len(headers) == 0 {
		return projections, nil
	}

	ids := make([]string, 0, len(headers))
	for _, header := range headers {
		ids = append(ids, header.ID)
	}

	var items []itemRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			name,
			price_amount,
			price_currency,
			quantity
		FROM items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Scan(&items).Error
	if err != nil {
		return nil, err
	}

	itemsByOrder := make(map[string][]projection.Item, len(headers))
	for _, item := range items {
		amount, _ := item.PriceAmount.Float64()
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], projection.Item{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price: projection.Money{
				Amount:   amount,
				Currency: item.PriceCurrency,
			},
		})
	}

	for _, header := range headers {
		projections = append(projections, projection.Order{
			ID:            header.ID,
			State:         header.State,
			RiderID:       header.RiderID,
			PhotoEvidence: header.PhotoEvidence,
			CreatedAt:     header.CreatedAt,
			UpdatedAt:     header.UpdatedAt,
			Items:         itemsByOrder[header.ID],
		})
	}

	return projections, nil
}

// Package projection defines the externally visible snapshot of an order.
// The projection, not the storage record, is the only shape ever returned to
// callers or handed to the broadcaster; it isolates the storage
// representation (fixed-point decimal columns) from the wire representation
// (floating numeric amount).
package projection

import (
	"time"

	"kitchenboard/internal/core/domain/model/order"
)

// Money is the wire representation of an item's unit price.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Item is the wire representation of one order line.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    Money  `json:"price"`
}

// Order is the normalized read view of an order returned by every engine
// operation and carried by every broadcast event.
type Order struct {
	ID            string    `json:"id"`
	State         string    `json:"state"`
	RiderID       *string   `json:"riderId"`
	PhotoEvidence *string   `json:"photoEvidence,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Items         []Item    `json:"items"`
}

// FromOrder derives the projection of an order aggregate.
func FromOrder(o *order.Order) Order {
	items := o.Items()
	projected := make([]Item, 0, len(items))
	for _, item := range items {
		projected = append(projected, Item{
			ID:       item.ID().String(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price: Money{
				Amount:   item.Price().AmountFloat(),
				Currency: item.Price().Currency(),
			},
		})
	}

	var riderID *string
	if r := o.RiderID(); r != "" {
		riderID = &r
	}
	var photo *string
	if p := o.PhotoEvidence(); p != "" {
		photo = &p
	}

	return Order{
		ID:            o.ID().String(),
		State:         o.State().String(),
		RiderID:       riderID,
		PhotoEvidence: photo,
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Items:         projected,
	}
}

// FromOrders derives projections for a slice of aggregates, preserving
// order.
func FromOrders(orders []*order.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

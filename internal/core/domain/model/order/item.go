package order

import (
	"errors"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/pkg/errs"
	"kitchenboard/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line entry of an order: a named product with a positive unit
// price and a quantity of at least one. Items are owned by exactly one order
// and held by value inside it; an item never holds a live handle back to its
// order.
type Item struct {
	id       kernel.UUID
	name     string
	price    kernel.Money
	quantity int

	guard guard.ConstructorGuard
}

// NewItem creates a validated Item. The name must be non-empty, the price
// must be a constructed Money value and the quantity at least 1.
func NewItem(id kernel.UUID, name string, price kernel.Money, quantity int) (Item, error) {
	if err := id.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}
	if err := price.Validate(); err != nil {
		return Item{}, err
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	if quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}

	return Item{
		id:       id,
		name:     name,
		price:    price,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// maxItemQuantity bounds a single line's quantity; anything larger is a
// caller bug, not a plausible kitchen order.
const maxItemQuantity = 1000

// ID returns the item's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// Name returns the item's product name.
func (i Item) Name() string {
	return i.name
}

// Price returns the item's unit price.
func (i Item) Price() kernel.Money {
	return i.price
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// IsEqual compares two items by identifier.
func (i Item) IsEqual(other Item) bool {
	return i.id.IsEqual(other.id)
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

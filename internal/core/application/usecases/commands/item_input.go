package commands

import (
	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/errs"
)

// ItemInput is one requested order line as supplied by the caller.
// PriceCurrency and Quantity are optional: a missing currency defaults to
// EUR, a missing quantity to 1.
type ItemInput struct {
	Name          string
	PriceAmount   float64
	PriceCurrency string
	Quantity      int
}

// buildItems normalizes a caller-supplied item list into domain items with
// fresh identifiers. The list must be non-empty; prices must be positive and
// quantities, when given, at least 1.
func buildItems(inputs []ItemInput) ([]order.Item, error) {
	if len(inputs) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(inputs))
	for _, input := range inputs {
		price, err := kernel.NewMoneyFromFloat(input.PriceAmount, input.PriceCurrency)
		if err != nil {
			return nil, err
		}

		quantity := input.Quantity
		if quantity == 0 {
			quantity = 1
		}

		item, err := order.NewItem(kernel.NewUUID(), input.Name, price, quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Timestamps come from the aggregate, not from GORM, so the automatic
// create/update tracking is disabled on them.
type OrderDTO struct {
	ID            string    `gorm:"type:varchar(36);primaryKey"`
	State         string    `gorm:"type:varchar(16);index"`
	RiderID       *string   `gorm:"type:varchar(64)"`
	PhotoEvidence *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false;index"`
	Items         []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one line of an order. Position preserves the insertion
// order of the items so readers see them in the sequence they were entered.
type ItemDTO struct {
	ID            string          `gorm:"type:varchar(36);primaryKey"`
	OrderID       string          `gorm:"type:varchar(36);index"`
	Name          string          `gorm:"type:varchar(255)"`
	PriceAmount   decimal.Decimal `gorm:"type:numeric(10,2)"`
	PriceCurrency string          `gorm:"type:varchar(3)"`
	Quantity      int
	Position      int
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *string
	if id := aggregate.RiderID(); id != "" {
		riderID = &id
	}

	var photo *string
	if p := aggregate.PhotoEvidence(); p != "" {
		photo = &p
	}

	domainItems := aggregate.Items()
	items := make([]ItemDTO, 0, len(domainItems))
	for position, item := range domainItems {
		items = append(items, ItemDTO{
			ID:            item.ID().String(),
			OrderID:       aggregate.ID().String(),
			Name:          item.Name(),
			PriceAmount:   item.Price().Amount(),
			PriceCurrency: item.Price().Currency(),
			Quantity:      item.Quantity(),
			Position:      position,
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().String(),
		State:         aggregate.State().String(),
		RiderID:       riderID,
		PhotoEvidence: photo,
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including state, rider assignment and
// items using RestoreOrder, which re-validates every invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	state, err := order.StateFromString(dto.State)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromString(itemDTO.ID)
		if itemErr != nil {
			return nil, itemErr
		}

		price, itemErr := kernel.NewMoney(itemDTO.PriceAmount, itemDTO.PriceCurrency)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(itemID, itemDTO.Name, price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var riderID string
	if dto.RiderID != nil {
		riderID = *dto.RiderID
	}

	var photo string
	if dto.PhotoEvidence != nil {
		photo = *dto.PhotoEvidence
	}

	return order.RestoreOrder(id, state, riderID, photo, items, dto.CreatedAt, dto.UpdatedAt)
}

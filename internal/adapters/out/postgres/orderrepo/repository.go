package orderrepo

import (
	"context"
	"errors"
	"time"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageUnavailableError("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The item set is replaced
// wholesale: previous item rows are deleted and the aggregate's current
// items inserted, so edits and identifier regeneration need no diffing.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"state":          dto.State,
			"rider_id":       dto.RiderID,
			"photo_evidence": dto.PhotoEvidence,
			"updated_at":     dto.UpdatedAt,
		})
	if result.Error != nil {
		return errs.NewStorageUnavailableError("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return errs.NewStorageUnavailableError("update order items", err)
	}
	if err := db.Create(&dto.Items).Error; err != nil {
		return errs.NewStorageUnavailableError("update order items", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its items in insertion order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", itemOrdering).
		First(&dto, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStorageUnavailableError("get order", err)
	}

	return toDomain(dto)
}

// GetAllActive retrieves every order not yet delivered, oldest first.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", itemOrdering).
		Where("state != ?", order.Delivered.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStorageUnavailableError("list active orders", err)
	}

	return toDomainAll(dtos)
}

// GetDeliveredSince retrieves delivered orders updated after the cutoff,
// most recent first.
func (r *GormOrderRepository) GetDeliveredSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", itemOrdering).
		Where("state = ? AND updated_at >= ?", order.Delivered.String(), cutoff).
		Order("updated_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStorageUnavailableError("list delivered orders", err)
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

func itemOrdering(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

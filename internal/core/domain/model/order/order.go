package order

import (
	"errors"
	"time"

	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods. This
	// ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root of the kitchen board. It tracks a customer
// request from creation through preparation to pickup, and owns its line
// items outright.
//
// Order maintains these invariants:
//   - It has at least one item at every observable point after creation
//   - Its state is always one of the four lifecycle states
//   - A rider is set if and only if the order is DELIVERED
//   - updatedAt strictly increases with every accepted mutation
//   - Transition legality is enforced here, not by callers: AdvanceState
//     follows single forward edges, pickup requires READY, recovery
//     requires DELIVERED, and item edits require PENDING or IN_PROGRESS
//
// The struct uses private fields to keep the invariants behind validated
// methods; instances must be created via NewOrder or RestoreOrder.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// state is the current lifecycle state
	state State

	// riderID identifies the rider that picked the order up
	// (empty until DELIVERED, cleared again on recovery)
	riderID string

	// photoEvidence is an opaque reference to delivery evidence
	// (blob URL); empty when none has been attached
	photoEvidence string

	// items is the order's line items, ordered by insertion
	items []Item

	// createdAt is set once at construction
	createdAt time.Time

	// updatedAt advances on every accepted mutation
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in PENDING state with the given items.
// The item list must be non-empty and every item must be valid.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromFloat(10.99, "")
//	item, _ := order.NewItem(kernel.NewUUID(), "Burger", price, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), []order.Item{item})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, items []Item) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Order{
		id:            id,
		state:         Pending,
		items:         append([]Item(nil), items...),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any valid state, but it still checks every invariant, so corrupt
// rows surface as errors instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	state State,
	riderID string,
	photoEvidence string,
	items []Item,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if err := state.ValidateCanHaveRider(riderID != ""); err != nil {
		return nil, err
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		state:         state,
		riderID:       riderID,
		photoEvidence: photoEvidence,
		items:         append([]Item(nil), items...),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. Call it when reconstructing orders from
// persistence to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// State returns the current lifecycle state.
func (o *Order) State() State {
	return o.state
}

// RiderID returns the identifier of the rider that picked the order up.
// Empty unless the order is DELIVERED.
func (o *Order) RiderID() string {
	return o.riderID
}

// PhotoEvidence returns the attached photo reference, or empty when none.
func (o *Order) PhotoEvidence() string {
	return o.photoEvidence
}

// Items returns a copy of the order's line items in insertion order.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last accepted mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsActive reports whether the order is on the active board (not DELIVERED).
func (o *Order) IsActive() bool {
	return o.state.IsActive()
}

// AdvanceState moves the order one forward edge along the lifecycle.
// Any other target is rejected with an InvalidTransitionError and the order
// is left unchanged.
func (o *Order) AdvanceState(target State) error {
	newState, err := o.state.Advance(target)
	if err != nil {
		return err
	}

	o.state = newState
	o.touch()
	return nil
}

// Pickup marks the order DELIVERED by the given rider. Legal only from
// READY; a repeated pickup of an already DELIVERED order fails with an
// InvalidStateError and leaves state and rider untouched.
func (o *Order) Pickup(riderID string) error {
	if riderID == "" {
		return errs.NewValueIsRequiredError("riderId")
	}

	newState, err := o.state.Pickup()
	if err != nil {
		return err
	}

	o.state = newState
	o.riderID = riderID
	o.touch()
	return nil
}

// Recover returns a DELIVERED order to PENDING and clears its rider, so a
// failed handoff can be put back on the board. Legal only from DELIVERED.
func (o *Order) Recover() error {
	newState, err := o.state.Recover()
	if err != nil {
		return err
	}

	o.state = newState
	o.riderID = ""
	o.touch()
	return nil
}

// ReplaceItems atomically swaps the entire item set. Legal only while the
// order is PENDING or IN_PROGRESS; the new list must be non-empty and every
// item valid, so the order can never be observed without items.
func (o *Order) ReplaceItems(items []Item) error {
	if err := o.state.ValidateEdit(); err != nil {
		return err
	}
	if err := validateItems(items); err != nil {
		return err
	}

	o.items = append([]Item(nil), items...)
	o.touch()
	return nil
}

// AttachPhotoEvidence stores an opaque photo reference on the order.
// Allowed in any state.
func (o *Order) AttachPhotoEvidence(photo string) error {
	if photo == "" {
		return errs.NewValueIsRequiredError("photoEvidence")
	}

	o.photoEvidence = photo
	o.touch()
	return nil
}

// touch advances updatedAt, keeping it strictly monotonic even when two
// mutations land within clock resolution.
func (o *Order) touch() {
	now := time.Now().UTC()
	if !now.After(o.updatedAt) {
		now = o.updatedAt.Add(time.Nanosecond)
	}
	o.updatedAt = now
}

// validateItems checks the non-empty invariant and every item's own
// validity.
func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

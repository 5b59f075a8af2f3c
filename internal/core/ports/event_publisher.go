package ports

import (
	"kitchenboard/internal/core/application/projection"
)

// EventPublisher fans lifecycle events out to connected viewers. Delivery is
// best-effort and at-most-once per connected subscriber: publishing never
// blocks a mutation and never fails it, and subscribers that connect later
// are not shown historical events.
type EventPublisher interface {
	Publish(event projection.Event)
}

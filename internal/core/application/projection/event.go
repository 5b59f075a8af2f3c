package projection

// EventType classifies a lifecycle event carried over the broadcast feed.
type EventType string

// Event types emitted after successful mutations. Every payload is the full
// projection of the affected order. Rider notices share the feed so
// connected displays can surface them as toasts.
const (
	EventOrderCreated       EventType = "order.created"
	EventOrderUpdated       EventType = "order.updated"
	EventOrderDelivered     EventType = "order.delivered"
	EventOrderRecovered     EventType = "order.recovered"
	EventOrderPhotoAttached EventType = "order.photo-attached"

	EventRiderWaiting  EventType = "rider.waiting"
	EventRiderRejected EventType = "rider.rejected"
)

// Event is one broadcast emission. Order is set for order.* events; Notice
// carries the human-readable text of rider.* events.
type Event struct {
	Type   EventType `json:"type"`
	Order  *Order    `json:"order,omitempty"`
	Notice string    `json:"notice,omitempty"`
}

// NewOrderEvent builds an order lifecycle event.
func NewOrderEvent(eventType EventType, o Order) Event {
	return Event{Type: eventType, Order: &o}
}

// NewNoticeEvent builds a rider notice event.
func NewNoticeEvent(eventType EventType, notice string) Event {
	return Event{Type: eventType, Notice: notice}
}

package order

import (
	"slices"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// EventKind tags the variant of an Event.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventCreated
	EventPaid
	EventCancelled
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "ORDER_CREATED"
	case EventPaid:
		return "ORDER_PAID"
	case EventCancelled:
		return "ORDER_CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Event is a domain event raised by an order transition. Every kind carries the same
// payload: a snapshot of the order taken when the event was raised, and the time it was
// raised. Consumers switch on Kind.
type Event struct {
	kind      EventKind
	order     Snapshot
	createdAt time.Time
}

func NewOrderCreatedEvent(o *Order, createdAt time.Time) Event {
	return newEvent(EventCreated, o, createdAt)
}

func NewOrderPaidEvent(o *Order, createdAt time.Time) Event {
	return newEvent(EventPaid, o, createdAt)
}

func NewOrderCancelledEvent(o *Order, createdAt time.Time) Event {
	return newEvent(EventCancelled, o, createdAt)
}

func newEvent(kind EventKind, o *Order, createdAt time.Time) Event {
	return Event{kind: kind, order: o.Snapshot(), createdAt: createdAt}
}

func (e Event) Kind() EventKind      { return e.kind }
func (e Event) Order() Snapshot      { return e.order }
func (e Event) CreatedAt() time.Time { return e.createdAt }

// Snapshot is an immutable copy of an order's state.
type Snapshot struct {
	ID              kernel.OrderID
	CustomerID      kernel.CustomerID
	RestaurantID    kernel.RestaurantID
	TrackingID      kernel.TrackingID
	DeliveryAddress kernel.StreetAddress
	Price           kernel.Money
	Status          Status
	Items           []ItemSnapshot
	FailureMessages []string
}

type ItemSnapshot struct {
	ID          kernel.OrderItemID
	ProductID   kernel.ProductID
	ProductName string
	Quantity    int
	Price       kernel.Money
	Subtotal    kernel.Money
}

// Snapshot copies the current state of the order.
func (o *Order) Snapshot() Snapshot {
	items := make([]ItemSnapshot, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, ItemSnapshot{
			ID:          item.ID(),
			ProductID:   item.Product().ID(),
			ProductName: item.Product().Name(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
			Subtotal:    item.Subtotal(),
		})
	}
	return Snapshot{
		ID:              o.id,
		CustomerID:      o.customerID,
		RestaurantID:    o.restaurantID,
		TrackingID:      o.trackingID,
		DeliveryAddress: o.deliveryAddress,
		Price:           o.price,
		Status:          o.status,
		Items:           items,
		FailureMessages: slices.Clone(o.failureMessages),
	}
}

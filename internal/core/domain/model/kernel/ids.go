package kernel

import "github.com/google/uuid"

// Typed identifiers keep an OrderID from being passed where a CustomerID is expected.
// Each one embeds UUID, so String, Raw, IsEqual and Validate are available, and values of
// the same type are comparable with ==.
type (
	OrderID      struct{ UUID }
	CustomerID   struct{ UUID }
	RestaurantID struct{ UUID }
	ProductID    struct{ UUID }
	OrderItemID  struct{ UUID }
	TrackingID   struct{ UUID }
)

func NewOrderID() OrderID         { return OrderID{NewUUID()} }
func NewTrackingID() TrackingID   { return TrackingID{NewUUID()} }
func NewOrderItemID() OrderItemID { return OrderItemID{NewUUID()} }

func OrderIDFromString(s string) (OrderID, error) {
	u, err := UUIDFromString(s)
	return OrderID{u}, err
}

func CustomerIDFromString(s string) (CustomerID, error) {
	u, err := UUIDFromString(s)
	return CustomerID{u}, err
}

func RestaurantIDFromString(s string) (RestaurantID, error) {
	u, err := UUIDFromString(s)
	return RestaurantID{u}, err
}

func ProductIDFromString(s string) (ProductID, error) {
	u, err := UUIDFromString(s)
	return ProductID{u}, err
}

func TrackingIDFromString(s string) (TrackingID, error) {
	u, err := UUIDFromString(s)
	return TrackingID{u}, err
}

func OrderIDFromRaw(id uuid.UUID) (OrderID, error) {
	u, err := UUIDFromRaw(id)
	return OrderID{u}, err
}

func CustomerIDFromRaw(id uuid.UUID) (CustomerID, error) {
	u, err := UUIDFromRaw(id)
	return CustomerID{u}, err
}

func RestaurantIDFromRaw(id uuid.UUID) (RestaurantID, error) {
	u, err := UUIDFromRaw(id)
	return RestaurantID{u}, err
}

func ProductIDFromRaw(id uuid.UUID) (ProductID, error) {
	u, err := UUIDFromRaw(id)
	return ProductID{u}, err
}

func OrderItemIDFromRaw(id uuid.UUID) (OrderItemID, error) {
	u, err := UUIDFromRaw(id)
	return OrderItemID{u}, err
}

func TrackingIDFromRaw(id uuid.UUID) (TrackingID, error) {
	u, err := UUIDFromRaw(id)
	return TrackingID{u}, err
}

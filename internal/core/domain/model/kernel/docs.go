// Package kernel provides the shared value objects of the ordering domain.
//
// The package includes:
//   - UUID: identifier primitive wrapping github.com/google/uuid
//   - OrderID, CustomerID, RestaurantID, ProductID, OrderItemID, TrackingID: typed identifiers
//   - Money: non-negative fixed-point amount with two decimal places
//   - StreetAddress: delivery address
//
// All value objects are immutable, and their zero values are invalid: they must be created
// through the New*/FromString constructors and report that through Validate.
package kernel

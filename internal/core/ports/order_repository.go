// Package ports defines the contracts between the ordering core and its infrastructure:
// repositories, the unit of work, and the publishers the saga emits events through.
package ports

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by OrderRepository.Update when the stored order
// changed since it was loaded. The triggering message should be redelivered.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add stores a new, initialized order with its items and address and returns the stored
	// order with its version set. A nil order with a nil error means nothing was saved.
	Add(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Update stores status and failure messages of an existing order if its version still
	// matches the stored one, and advances the version. Otherwise it returns
	// ErrConcurrentModification.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by id. A missing order is an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// FindByTrackingID loads an order by its customer-facing tracking id.
	// A missing order is an errs.ObjectNotFoundError.
	FindByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error)
}

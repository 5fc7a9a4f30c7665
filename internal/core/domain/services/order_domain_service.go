package services

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
)

// ErrRestaurantNotActive is returned when an order targets a restaurant that does not
// accept orders right now.
var ErrRestaurantNotActive = fmt.Errorf("%w: restaurant is not active", order.ErrDomainValidation)

// ProductMismatchError reports an ordered product that is missing from the restaurant
// catalog or whose declared price differs from the catalog price.
type ProductMismatchError struct {
	ProductID    kernel.ProductID
	Declared     kernel.Money
	CatalogPrice *kernel.Money
}

func (e *ProductMismatchError) Error() string {
	if e.CatalogPrice == nil {
		return fmt.Sprintf("%s: product %s is not in the restaurant catalog", order.ErrDomainValidation, e.ProductID)
	}
	return fmt.Sprintf("%s: product %s costs %s, order declares %s",
		order.ErrDomainValidation, e.ProductID, e.CatalogPrice, e.Declared)
}

func (e *ProductMismatchError) Unwrap() error {
	return order.ErrDomainValidation
}

// OrderDomainService is the policy layer between application handlers and the Order
// aggregate. Each saga step maps to one method:
//
//	creation          ValidateAndInitializeOrder -> Created event (to payment)
//	payment completed PayOrder                   -> Paid event (to restaurant approval)
//	approved          ApproveOrder
//	rejected          CancelOrderPayment         -> Cancelled event (to payment, refund)
//	payment cancelled CancelOrder
//
// Example usage:
//
//	svc := services.NewOrderDomainService()
//	event, err := svc.ValidateAndInitializeOrder(o, r)
//	if errors.Is(err, order.ErrDomainValidation) {
//	    // reject the request
//	}
type OrderDomainService struct {
	now func() time.Time
}

// NewOrderDomainService returns a service that stamps events with the current UTC time.
func NewOrderDomainService() OrderDomainService {
	return OrderDomainService{now: func() time.Time { return time.Now().UTC() }}
}

// NewOrderDomainServiceWithClock is NewOrderDomainService with a custom event clock.
func NewOrderDomainServiceWithClock(now func() time.Time) OrderDomainService {
	return OrderDomainService{now: now}
}

// ValidateAndInitializeOrder checks the restaurant policy, confirms each item's product
// against the catalog, initializes the order and validates its prices.
func (s OrderDomainService) ValidateAndInitializeOrder(o *order.Order, r *restaurant.Restaurant) (order.Event, error) {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return order.Event{}, err
	}

	if !r.IsActive() {
		return order.Event{}, ErrRestaurantNotActive
	}

	if err := s.confirmProducts(o, r); err != nil {
		return order.Event{}, err
	}

	if err := o.InitializeOrder(); err != nil {
		return order.Event{}, err
	}

	if err := o.ValidateOrder(); err != nil {
		return order.Event{}, err
	}

	return order.NewOrderCreatedEvent(o, s.now()), nil
}

// PayOrder applies a completed payment.
func (s OrderDomainService) PayOrder(o *order.Order) (order.Event, error) {
	if err := o.Pay(); err != nil {
		return order.Event{}, err
	}
	return order.NewOrderPaidEvent(o, s.now()), nil
}

// ApproveOrder applies a restaurant approval. The saga ends here, so no event is raised.
func (s OrderDomainService) ApproveOrder(o *order.Order) error {
	return o.Approve()
}

// CancelOrderPayment starts compensation after a restaurant rejection. The returned event
// asks the payment service to refund.
func (s OrderDomainService) CancelOrderPayment(o *order.Order, failureMessages []string) (order.Event, error) {
	if err := o.InitCancel(failureMessages); err != nil {
		return order.Event{}, err
	}
	return order.NewOrderCancelledEvent(o, s.now()), nil
}

// CancelOrder finishes the saga as cancelled. The origin status is checked before the
// messages are recorded, so a rejected call leaves the order unchanged.
func (s OrderDomainService) CancelOrder(o *order.Order, failureMessages []string) error {
	if _, err := o.Status().Cancel(); err != nil {
		return err
	}
	o.AddFailureMessages(failureMessages)
	return o.Cancel()
}

func (s OrderDomainService) confirmProducts(o *order.Order, r *restaurant.Restaurant) error {
	for _, item := range o.Items() {
		catalogEntry, ok := r.FindProduct(item.Product().ID())
		if !ok {
			return &ProductMismatchError{ProductID: item.Product().ID(), Declared: item.Price()}
		}
		if !catalogEntry.Price().IsEqual(item.Price()) {
			catalogPrice := catalogEntry.Price()
			return &ProductMismatchError{
				ProductID:    item.Product().ID(),
				Declared:     item.Price(),
				CatalogPrice: &catalogPrice,
			}
		}
		item.ConfirmProduct(catalogEntry)
	}
	return nil
}

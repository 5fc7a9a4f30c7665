package order

import (
	"errors"
	"slices"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// Order is the aggregate root of the ordering saga. It owns the items, the delivery
// address and the failure messages collected while the saga compensates.
//
// Order follows these invariants:
//   - id and trackingID are assigned once, by InitializeOrder
//   - items are fixed at creation
//   - price equals the sum of item subtotals (checked by ValidateOrder)
//   - status only changes through Pay, Approve, InitCancel and Cancel
//   - failure messages are only appended
type Order struct {
	id              kernel.OrderID
	customerID      kernel.CustomerID
	restaurantID    kernel.RestaurantID
	deliveryAddress kernel.StreetAddress
	price           kernel.Money
	items           []*Item
	trackingID      kernel.TrackingID
	status          Status
	failureMessages []string

	// paid is set by Pay and never cleared, so a CANCELLED order still tells whether the
	// payment had completed before the saga compensated.
	paid bool

	// version is the optimistic concurrency token of the persisted row. Zero means the
	// order was never stored.
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates an unpersisted order from a creation request. The order has no id and
// Unknown status until InitializeOrder is called.
//
// Example:
//
//	o, err := order.NewOrder(customerID, restaurantID, address, total, items)
//	if err != nil {
//	    return err
//	}
//	if err := o.InitializeOrder(); err != nil {
//	    return err
//	}
//	if err := o.ValidateOrder(); err != nil {
//	    return err // price or item mismatch
//	}
func NewOrder(
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	deliveryAddress kernel.StreetAddress,
	price kernel.Money,
	items []*Item,
) (*Order, error) {
	o := &Order{
		price: price,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setDeliveryAddress(deliveryAddress),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. No business rule is re-checked apart
// from structural validity of the stored values.
func RestoreOrder(
	id kernel.OrderID,
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	deliveryAddress kernel.StreetAddress,
	price kernel.Money,
	items []*Item,
	trackingID kernel.TrackingID,
	status Status,
	paid bool,
	failureMessages []string,
	version int,
) (*Order, error) {
	o, err := NewOrder(customerID, restaurantID, deliveryAddress, price, items)
	if err != nil {
		return nil, err
	}

	if err := errors.Join(
		id.Validate(),
		trackingID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.id = id
	o.trackingID = trackingID
	o.status = status
	o.paid = paid || status.HasBeenPaid()
	o.failureMessages = slices.Clone(failureMessages)
	o.version = version
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() kernel.OrderID                    { return o.id }
func (o *Order) CustomerID() kernel.CustomerID         { return o.customerID }
func (o *Order) RestaurantID() kernel.RestaurantID     { return o.restaurantID }
func (o *Order) DeliveryAddress() kernel.StreetAddress { return o.deliveryAddress }
func (o *Order) Price() kernel.Money                   { return o.price }
func (o *Order) TrackingID() kernel.TrackingID         { return o.trackingID }
func (o *Order) Status() Status                        { return o.status }
func (o *Order) Version() int                          { return o.version }

// HasBeenPaid reports whether the payment completed at some point. Unlike
// Status.HasBeenPaid it is also true for a CANCELLED order that was refunded.
func (o *Order) HasBeenPaid() bool {
	return o.paid
}

// Items returns the order lines. The slice is a copy, the items are shared.
func (o *Order) Items() []*Item {
	return slices.Clone(o.items)
}

func (o *Order) FailureMessages() []string {
	return slices.Clone(o.failureMessages)
}

// InitializeOrder assigns the order id, tracking id and item ids and moves the order to
// PENDING. It fails with InvalidOrderStateError if the order already has an id.
func (o *Order) InitializeOrder() error {
	if o.id.Validate() == nil || o.status != Unknown {
		return NewInvalidOrderStateError(OperationInitialize, o.status)
	}

	o.id = kernel.NewOrderID()
	o.trackingID = kernel.NewTrackingID()
	o.status = Pending
	for _, item := range o.items {
		item.initialize(o.id, kernel.NewOrderItemID())
	}
	return nil
}

// ValidateOrder checks, in this order: the order is initialized, the total price is
// positive, every item is priced consistently with its product and quantity, and the
// item subtotals add up to the total price. The first violation is returned.
func (o *Order) ValidateOrder() error {
	if o.id.Validate() != nil || o.status == Unknown {
		return NewInvalidOrderStateError(OperationValidate, o.status)
	}

	if !o.price.IsGreaterThanZero() {
		return ErrPriceNotPositive
	}

	itemsTotal := kernel.ZeroMoney
	for _, item := range o.items {
		if err := item.validatePrice(); err != nil {
			return err
		}
		itemsTotal = itemsTotal.Add(item.Subtotal())
	}

	if !o.price.IsEqual(itemsTotal) {
		return NewPriceMismatchError("order total", itemsTotal, o.price)
	}
	return nil
}

// Pay moves the order from PENDING to PAID.
func (o *Order) Pay() error {
	next, err := o.status.Pay()
	if err != nil {
		return err
	}
	o.status = next
	o.paid = true
	return nil
}

// Approve moves the order from PAID to APPROVED.
func (o *Order) Approve() error {
	next, err := o.status.Approve()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// InitCancel moves the order from PAID to CANCELLING and records why.
func (o *Order) InitCancel(failureMessages []string) error {
	next, err := o.status.InitCancel()
	if err != nil {
		return err
	}
	o.status = next
	o.AddFailureMessages(failureMessages)
	return nil
}

// Cancel moves the order from CANCELLING or PENDING to CANCELLED.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// AddFailureMessages appends the non-blank messages.
func (o *Order) AddFailureMessages(messages []string) {
	for _, m := range messages {
		if strings.TrimSpace(m) != "" {
			o.failureMessages = append(o.failureMessages, m)
		}
	}
}

func (o *Order) setCustomerID(id kernel.CustomerID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.RestaurantID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setDeliveryAddress(address kernel.StreetAddress) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("address", err)
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrItemsRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	return nil
}

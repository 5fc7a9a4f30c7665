package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// Item is one line of an order. Its id and owning order id are assigned when the order is
// initialized.
type Item struct {
	id       kernel.OrderItemID
	orderID  kernel.OrderID
	product  restaurant.Product
	quantity int
	price    kernel.Money
	subtotal kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates an unassigned order line. Price and subtotal are taken as declared by the
// customer and are checked against the product and quantity by Order.ValidateOrder.
//
// Example:
//
//	ref, _ := restaurant.NewProductReference(productID)
//	price, _ := kernel.MoneyFromString("5.00")
//	item, err := order.NewItem(ref, 2, price, price.Multiply(2))
func NewItem(product restaurant.Product, quantity int, price, subtotal kernel.Money) (*Item, error) {
	item := &Item{
		price:    price,
		subtotal: subtotal,
		guard:    guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		item.setProduct(product),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	return item, nil
}

// RestoreItem rebuilds a persisted order line.
func RestoreItem(
	id kernel.OrderItemID,
	orderID kernel.OrderID,
	product restaurant.Product,
	quantity int,
	price, subtotal kernel.Money,
) (*Item, error) {
	item, err := NewItem(product, quantity, price, subtotal)
	if err != nil {
		return nil, err
	}
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	item.id = id
	item.orderID = orderID
	return item, nil
}

func (i *Item) ID() kernel.OrderItemID      { return i.id }
func (i *Item) OrderID() kernel.OrderID     { return i.orderID }
func (i *Item) Product() restaurant.Product { return i.product }
func (i *Item) Quantity() int               { return i.quantity }
func (i *Item) Price() kernel.Money         { return i.price }
func (i *Item) Subtotal() kernel.Money      { return i.subtotal }

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ConfirmProduct replaces the product reference with the catalog entry of the same id.
func (i *Item) ConfirmProduct(catalogEntry restaurant.Product) {
	if i.product.IsEqual(catalogEntry) {
		i.product = catalogEntry
	}
}

// initialize assigns the line's identity. It is only called by Order.InitializeOrder.
func (i *Item) initialize(orderID kernel.OrderID, id kernel.OrderItemID) {
	i.orderID = orderID
	i.id = id
}

// validatePrice checks price > 0, price == product price and subtotal == price * quantity.
func (i *Item) validatePrice() error {
	if !i.price.IsGreaterThanZero() {
		return fmt.Errorf("%w: item %s price must be greater than zero", ErrDomainValidation, i.product.ID())
	}
	if !i.price.IsEqual(i.product.Price()) {
		return NewPriceMismatchError(fmt.Sprintf("price of product %s", i.product.ID()), i.product.Price(), i.price)
	}
	if expected := i.price.Multiply(i.quantity); !i.subtotal.IsEqual(expected) {
		return NewPriceMismatchError(fmt.Sprintf("subtotal of product %s", i.product.ID()), expected, i.subtotal)
	}
	return nil
}

func (i *Item) setProduct(product restaurant.Product) error {
	if err := product.ID().Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product", err)
	}
	i.product = product
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

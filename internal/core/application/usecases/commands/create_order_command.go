package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderItem is one requested line: a product and the price the customer saw.
type CreateOrderItem struct {
	ProductID kernel.ProductID
	Quantity  int
	Price     kernel.Money
	Subtotal  kernel.Money
}

// CreateOrderAddress is the requested delivery address.
type CreateOrderAddress struct {
	Street     string
	PostalCode string
	City       string
}

// CreateOrderCommand represents a customer's request to place an order at a restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, restaurantID, total,
//	    []CreateOrderItem{{ProductID: pizzaID, Quantity: 2, Price: five, Subtotal: ten}},
//	    CreateOrderAddress{Street: "street_1", PostalCode: "1000AB", City: "Amsterdam"},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	resp, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.CustomerID
	restaurantID kernel.RestaurantID
	price        kernel.Money
	items        []CreateOrderItem
	address      CreateOrderAddress

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of the request. Prices are only checked against
// each other and the catalog when the order is initialized.
func NewCreateOrderCommand(
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	price kernel.Money,
	items []CreateOrderItem,
	address CreateOrderAddress,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		price: price,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() kernel.RestaurantID {
	return c.restaurantID
}

func (c CreateOrderCommand) Price() kernel.Money {
	return c.price
}

func (c CreateOrderCommand) Items() []CreateOrderItem {
	return append([]CreateOrderItem(nil), c.items...)
}

func (c CreateOrderCommand) Address() CreateOrderAddress {
	return c.address
}

// ProductIDs returns the distinct products referenced by the items.
func (c CreateOrderCommand) ProductIDs() []kernel.ProductID {
	seen := make(map[kernel.ProductID]struct{}, len(c.items))
	ids := make([]kernel.ProductID, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

func (c *CreateOrderCommand) setCustomerID(id kernel.CustomerID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.RestaurantID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].productId", i), err)
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", item.Quantity),
			)
		}
	}
	c.items = append([]CreateOrderItem(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setAddress(address CreateOrderAddress) error {
	var missing []error
	if strings.TrimSpace(address.Street) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("address.street"))
	}
	if strings.TrimSpace(address.PostalCode) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("address.postalCode"))
	}
	if strings.TrimSpace(address.City) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("address.city"))
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}
	c.address = address
	return nil
}

// Package customer holds the ordering service's local view of a customer: enough to check
// that the customer placing an order exists.
package customer

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

type Customer struct {
	id    kernel.CustomerID
	guard guard.ConstructorGuard
}

func NewCustomer(id kernel.CustomerID) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Customer{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c *Customer) ID() kernel.CustomerID {
	return c.id
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

package ports

import (
	"context"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
)

// CustomerRepository reads the local customer projection.
type CustomerRepository interface {
	// FindCustomer returns errs.ObjectNotFoundError when the customer is unknown.
	FindCustomer(ctx context.Context, id kernel.CustomerID) (*customer.Customer, error)
}

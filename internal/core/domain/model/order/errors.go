package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
)

var (
	// ErrDomainValidation is the parent of every price or item invariant violation.
	ErrDomainValidation = errors.New("order validation failed")

	ErrPriceNotPositive = fmt.Errorf("%w: order price must be greater than zero", ErrDomainValidation)

	ErrItemsRequired = fmt.Errorf("%w: order must contain at least one item", ErrDomainValidation)

	// ErrInvalidOrderState is the parent of every illegal transition.
	ErrInvalidOrderState = errors.New("invalid order state")

	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	ErrItemIsNotConstructed  = errors.New("Item must be created via NewItem or RestoreItem constructor")
)

// InvalidOrderStateError names the operation that was attempted and the status the order
// was in.
type InvalidOrderStateError struct {
	Operation string
	Status    Status
}

func NewInvalidOrderStateError(operation string, status Status) *InvalidOrderStateError {
	return &InvalidOrderStateError{Operation: operation, Status: status}
}

func (e *InvalidOrderStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s order in status %s", ErrInvalidOrderState, e.Operation, e.Status)
}

func (e *InvalidOrderStateError) Unwrap() error {
	return ErrInvalidOrderState
}

// PriceMismatchError reports an amount that differs from the one derived from other data.
// Subject says which amount was checked, for example "order total".
type PriceMismatchError struct {
	Subject  string
	Expected kernel.Money
	Actual   kernel.Money
}

func NewPriceMismatchError(subject string, expected, actual kernel.Money) *PriceMismatchError {
	return &PriceMismatchError{Subject: subject, Expected: expected, Actual: actual}
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("%s: %s is %s, expected %s", ErrDomainValidation, e.Subject, e.Actual, e.Expected)
}

func (e *PriceMismatchError) Unwrap() error {
	return ErrDomainValidation
}

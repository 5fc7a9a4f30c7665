package commands

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrOrderNotFound      = errors.New("order not found")

	// ErrOrderPersistence is returned when saving an order reported no error but returned
	// no stored order either.
	ErrOrderPersistence = errors.New("order could not be saved")
)

// asNotFound tags a repository not-found error with the handler level sentinel and passes
// every other error through unchanged.
func asNotFound(sentinel, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

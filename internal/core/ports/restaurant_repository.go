package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
)

// RestaurantRepository reads the local restaurant projection.
type RestaurantRepository interface {
	// FindRestaurantInformation loads the restaurant with the catalog entries for productIDs.
	// Products that the restaurant does not offer are left out of the result. An unknown
	// restaurant is an errs.ObjectNotFoundError.
	FindRestaurantInformation(
		ctx context.Context,
		restaurantID kernel.RestaurantID,
		productIDs []kernel.ProductID,
	) (*restaurant.Restaurant, error)
}

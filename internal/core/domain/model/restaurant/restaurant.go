package restaurant

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant is the restaurant read model with the subset of the catalog that an order
// references.
type Restaurant struct {
	id       kernel.RestaurantID
	active   bool
	products []Product

	guard guard.ConstructorGuard
}

func NewRestaurant(id kernel.RestaurantID, active bool, products []Product) (*Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Restaurant{
		id:       id,
		active:   active,
		products: append([]Product(nil), products...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (r *Restaurant) ID() kernel.RestaurantID { return r.id }
func (r *Restaurant) IsActive() bool          { return r.active }

// Products returns a copy of the catalog.
func (r *Restaurant) Products() []Product {
	return append([]Product(nil), r.products...)
}

// FindProduct looks a product up in the catalog by id.
func (r *Restaurant) FindProduct(id kernel.ProductID) (Product, bool) {
	for _, p := range r.products {
		if p.ID() == id {
			return p, true
		}
	}
	return Product{}, false
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

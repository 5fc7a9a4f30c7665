package postgrestest

import (
	"testing"

	"ordering/internal/adapters/out/postgres/customerrepo"
	"ordering/internal/adapters/out/postgres/restaurantrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// InsertCustomer adds a row to the customer projection.
func InsertCustomer(t testing.TB, db *gorm.DB, id kernel.CustomerID) {
	t.Helper()
	require.NoError(t, db.Create(&customerrepo.CustomerDTO{ID: id.Raw()}).Error)
}

// InsertRestaurant adds a restaurant offering products, all available.
func InsertRestaurant(t testing.TB, db *gorm.DB, id kernel.RestaurantID, active bool, products ...restaurant.Product) {
	t.Helper()

	dto := restaurantrepo.RestaurantDTO{ID: id.Raw(), Name: "restaurant", Active: active}
	for _, p := range products {
		dto.Products = append(dto.Products, restaurantrepo.ProductDTO{
			ID:        p.ID().Raw(),
			Name:      p.Name(),
			Price:     p.Price().Amount(),
			Available: true,
		})
	}
	require.NoError(t, db.Create(&dto).Error)
}

// NewProduct builds a catalog product priced at amount.
func NewProduct(t testing.TB, name, amount string) restaurant.Product {
	t.Helper()

	price, err := kernel.NewMoney(decimal.RequireFromString(amount))
	require.NoError(t, err)
	p, err := restaurant.NewProduct(kernel.ProductID{UUID: kernel.NewUUID()}, name, price)
	require.NoError(t, err)
	return p
}

// NewPendingOrder builds an initialized order with one line per product, two of each.
func NewPendingOrder(t testing.TB, products ...restaurant.Product) *order.Order {
	t.Helper()

	items := make([]*order.Item, 0, len(products))
	total := kernel.ZeroMoney
	for _, p := range products {
		subtotal := p.Price().Multiply(2)
		item, err := order.NewItem(p, 2, p.Price(), subtotal)
		require.NoError(t, err)
		items = append(items, item)
		total = total.Add(subtotal)
	}

	address, err := kernel.NewStreetAddress(kernel.NewUUID(), "street_1", "1000AB", "Amsterdam")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.CustomerID{UUID: kernel.NewUUID()},
		kernel.RestaurantID{UUID: kernel.NewUUID()},
		address,
		total,
		items,
	)
	require.NoError(t, err)
	require.NoError(t, o.InitializeOrder())
	require.NoError(t, o.ValidateOrder())
	return o
}

// Package restaurantrepo reads the local restaurant and product catalog projection.
package restaurantrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name     string       `gorm:"type:varchar(255);not null"`
	Active   bool         `gorm:"not null"`
	Products []ProductDTO `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// ProductDTO is a catalog entry. The same product id may be offered by several restaurants
// at different prices, so the key is the pair.
type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Available    bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "restaurant_products"
}

func toDomain(dto RestaurantDTO, products []ProductDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.RestaurantIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}

	catalog := make([]restaurant.Product, 0, len(products))
	for _, p := range products {
		productID, idErr := kernel.ProductIDFromRaw(p.ID)
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(p.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		product, productErr := restaurant.NewProduct(productID, p.Name, price)
		if productErr != nil {
			return nil, productErr
		}
		catalog = append(catalog, product)
	}

	return restaurant.NewRestaurant(id, dto.Active, catalog)
}

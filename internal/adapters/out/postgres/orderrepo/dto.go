// Package orderrepo maps the order aggregate to the orders, order_items and order_addresses
// tables.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status is stored in its upper-case string form so the
// tracking query can read it without the domain package.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;not null"`
	TrackingID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          string          `gorm:"type:varchar(16);not null;index"`
	Paid            bool            `gorm:"not null"`
	FailureMessages []string        `gorm:"type:text;serializer:json"`
	Version         int             `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Address OrderAddressDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Items   []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderAddressDTO is the delivery address of one order.
type OrderAddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Street     string    `gorm:"type:varchar(255);not null"`
	PostalCode string    `gorm:"type:varchar(32);not null"`
	City       string    `gorm:"type:varchar(255);not null"`
}

func (OrderAddressDTO) TableName() string {
	return "order_addresses"
}

// OrderItemDTO is one order line with the product snapshot taken at creation.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255)"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	address := o.DeliveryAddress()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:          item.ID().Raw(),
			OrderID:     o.ID().Raw(),
			Position:    i,
			ProductID:   item.Product().ID().Raw(),
			ProductName: item.Product().Name(),
			Quantity:    item.Quantity(),
			Price:       item.Price().Amount(),
			Subtotal:    item.Subtotal().Amount(),
		})
	}

	return OrderDTO{
		ID:              o.ID().Raw(),
		CustomerID:      o.CustomerID().Raw(),
		RestaurantID:    o.RestaurantID().Raw(),
		TrackingID:      o.TrackingID().Raw(),
		Price:           o.Price().Amount(),
		Status:          o.Status().String(),
		Paid:            o.HasBeenPaid(),
		FailureMessages: o.FailureMessages(),
		Version:         o.Version(),
		Address: OrderAddressDTO{
			ID:         address.ID().Raw(),
			OrderID:    o.ID().Raw(),
			Street:     address.Street(),
			PostalCode: address.PostalCode(),
			City:       address.City(),
		},
		Items: items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	orderID, err := kernel.OrderIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.CustomerIDFromRaw(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.RestaurantIDFromRaw(dto.RestaurantID)
	if err != nil {
		return nil, err
	}
	trackingID, err := kernel.TrackingIDFromRaw(dto.TrackingID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	addressID, err := kernel.UUIDFromRaw(dto.Address.ID)
	if err != nil {
		return nil, err
	}
	address, err := kernel.NewStreetAddress(addressID, dto.Address.Street, dto.Address.PostalCode, dto.Address.City)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(orderID, itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		orderID, customerID, restaurantID, address, price, items,
		trackingID, status, dto.Paid, dto.FailureMessages, dto.Version,
	)
}

func itemToDomain(orderID kernel.OrderID, dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.OrderItemIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.ProductIDFromRaw(dto.ProductID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}

	product, err := restaurant.NewProductReference(productID)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, orderID, product.Confirm(dto.ProductName, price), dto.Quantity, price, subtotal)
}

// Package messaging defines the JSON contracts exchanged with the payment and restaurant
// services, and the broker-independent pieces shared by the Kafka and RabbitMQ adapters:
// encoding domain events into outbox messages, routing inbound responses to the saga
// handlers, and deciding whether a failed message should be retried.
package messaging

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderEventMessage is the outbound payload for every order event. SagaID is the order id.
type OrderEventMessage struct {
	Type            string             `json:"type"`
	ID              string             `json:"id"`
	SagaID          string             `json:"sagaId"`
	OrderID         string             `json:"orderId"`
	CustomerID      string             `json:"customerId"`
	RestaurantID    string             `json:"restaurantId"`
	TrackingID      string             `json:"trackingId"`
	Price           string             `json:"price"`
	Status          string             `json:"status"`
	Address         AddressMessage     `json:"address"`
	Items           []OrderItemMessage `json:"items"`
	FailureMessages []string           `json:"failureMessages"`
	CreatedAt       time.Time          `json:"createdAt"`
}

type AddressMessage struct {
	ID         string `json:"id"`
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

type OrderItemMessage struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	SubTotal    string `json:"subTotal"`
}

// ResponseEnvelope holds the fields common to every inbound saga response.
type ResponseEnvelope struct {
	ID              string    `json:"id"`
	SagaID          string    `json:"sagaId"`
	OrderID         string    `json:"orderId"`
	CreatedAt       time.Time `json:"createdAt"`
	FailureMessages []string  `json:"failureMessages"`
}

// PaymentResponseMessage is published by the payment service on the payment-response topic.
type PaymentResponseMessage struct {
	ResponseEnvelope
	PaymentID     string          `json:"paymentId"`
	CustomerID    string          `json:"customerId"`
	Price         decimal.Decimal `json:"price"`
	PaymentStatus string          `json:"paymentStatus"`
}

// RestaurantApprovalResponseMessage is published by the restaurant service.
type RestaurantApprovalResponseMessage struct {
	ResponseEnvelope
	RestaurantID        string `json:"restaurantId"`
	OrderApprovalStatus string `json:"orderApprovalStatus"`
}

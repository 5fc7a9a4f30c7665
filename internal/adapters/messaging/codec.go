package messaging

import (
	"encoding/json"
	"errors"
	"fmt"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/google/uuid"
)

// ErrMalformedMessage marks an inbound payload that can never be processed. Such messages
// are logged and acknowledged instead of being retried.
var ErrMalformedMessage = errors.New("malformed message")

// Codec converts domain events to outbox messages and inbound payloads to saga commands.
type Codec struct {
	newID func() string
}

func NewCodec() *Codec {
	return &Codec{newID: uuid.NewString}
}

// Encode builds the outbox message for event on channel. The message is keyed by order id so
// brokers keep the events of one order in sequence.
func (c *Codec) Encode(channel ports.Channel, event order.Event) (ports.Message, error) {
	snapshot := event.Order()
	if err := snapshot.ID.Validate(); err != nil {
		return ports.Message{}, fmt.Errorf("encode %s: %w", event.Kind(), err)
	}

	id := c.newID()
	payload, err := json.Marshal(toOrderEventMessage(id, event))
	if err != nil {
		return ports.Message{}, fmt.Errorf("encode %s: %w", event.Kind(), err)
	}

	return ports.Message{
		ID:        id,
		Channel:   channel,
		Key:       snapshot.ID.String(),
		Kind:      event.Kind().String(),
		Payload:   payload,
		CreatedAt: event.CreatedAt(),
	}, nil
}

func toOrderEventMessage(id string, event order.Event) OrderEventMessage {
	s := event.Order()

	items := make([]OrderItemMessage, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, OrderItemMessage{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price.String(),
			SubTotal:    item.Subtotal.String(),
		})
	}

	failureMessages := s.FailureMessages
	if failureMessages == nil {
		failureMessages = []string{}
	}

	return OrderEventMessage{
		Type:         event.Kind().String(),
		ID:           id,
		SagaID:       s.ID.String(),
		OrderID:      s.ID.String(),
		CustomerID:   s.CustomerID.String(),
		RestaurantID: s.RestaurantID.String(),
		TrackingID:   s.TrackingID.String(),
		Price:        s.Price.String(),
		Status:       s.Status.String(),
		Address: AddressMessage{
			ID:         s.DeliveryAddress.ID().String(),
			Street:     s.DeliveryAddress.Street(),
			PostalCode: s.DeliveryAddress.PostalCode(),
			City:       s.DeliveryAddress.City(),
		},
		Items:           items,
		FailureMessages: failureMessages,
		CreatedAt:       event.CreatedAt().UTC(),
	}
}

// DecodePaymentResponse parses a payment response. Every failure wraps ErrMalformedMessage.
func DecodePaymentResponse(data []byte) (commands.PaymentResponseCommand, error) {
	var msg PaymentResponseMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return commands.PaymentResponseCommand{}, malformed("payment response", err)
	}

	orderID, err := kernel.OrderIDFromString(msg.OrderID)
	if err != nil {
		return commands.PaymentResponseCommand{}, malformed("payment response", err)
	}

	status, err := commands.ParsePaymentStatus(msg.PaymentStatus)
	if err != nil {
		return commands.PaymentResponseCommand{}, malformed("payment response", err)
	}

	price, err := kernel.NewMoney(msg.Price)
	if err != nil {
		return commands.PaymentResponseCommand{}, malformed("payment response", err)
	}

	// The customer id is informational; an unparsable one is kept as the zero value.
	customerID, _ := kernel.CustomerIDFromString(msg.CustomerID)

	cmd, err := commands.NewPaymentResponseCommand(
		msg.ID, msg.SagaID, orderID, msg.PaymentID, customerID, price, status, msg.FailureMessages, msg.CreatedAt,
	)
	if err != nil {
		return commands.PaymentResponseCommand{}, malformed("payment response", err)
	}
	return cmd, nil
}

// DecodeRestaurantApprovalResponse parses a restaurant approval response. Every failure wraps
// ErrMalformedMessage.
func DecodeRestaurantApprovalResponse(data []byte) (commands.RestaurantApprovalResponseCommand, error) {
	var msg RestaurantApprovalResponseMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return commands.RestaurantApprovalResponseCommand{}, malformed("restaurant approval response", err)
	}

	orderID, err := kernel.OrderIDFromString(msg.OrderID)
	if err != nil {
		return commands.RestaurantApprovalResponseCommand{}, malformed("restaurant approval response", err)
	}

	status, err := commands.ParseApprovalStatus(msg.OrderApprovalStatus)
	if err != nil {
		return commands.RestaurantApprovalResponseCommand{}, malformed("restaurant approval response", err)
	}

	restaurantID, _ := kernel.RestaurantIDFromString(msg.RestaurantID)

	cmd, err := commands.NewRestaurantApprovalResponseCommand(
		msg.ID, msg.SagaID, orderID, restaurantID, status, msg.FailureMessages, msg.CreatedAt,
	)
	if err != nil {
		return commands.RestaurantApprovalResponseCommand{}, malformed("restaurant approval response", err)
	}
	return cmd, nil
}

func malformed(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMalformedMessage, what, err)
}

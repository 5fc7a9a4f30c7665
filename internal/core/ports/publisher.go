package ports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/order"
)

// ErrPublish is the parent of every broker publish failure. Publish failures are retryable.
var ErrPublish = errors.New("publish failed")

// Channel is a logical outbound destination. Broker adapters map it to a topic or routing key.
type Channel string

const (
	PaymentRequestChannel            Channel = "payment-request"
	RestaurantApprovalRequestChannel Channel = "restaurant-approval-request"
)

// EventPublisher stages domain events for delivery. Implementations bound to a unit of work
// must not deliver anything before the unit of work commits.
type EventPublisher interface {
	Publish(ctx context.Context, channel Channel, event order.Event) error
}

// Message is an encoded event waiting in, or read from, the outbox.
type Message struct {
	ID        string
	Sequence  int64
	Channel   Channel
	Key       string
	Kind      string
	Payload   []byte
	CreatedAt time.Time
}

// MessagePublisher delivers encoded messages to the broker. Messages with the same Key must be
// delivered in the order Publish is called.
type MessagePublisher interface {
	Publish(ctx context.Context, msg Message) error
}

// PublishError wraps a broker failure for a single message.
type PublishError struct {
	MessageID string
	Channel   Channel
	Cause     error
}

func NewPublishError(msg Message, cause error) *PublishError {
	return &PublishError{MessageID: msg.ID, Channel: msg.Channel, Cause: cause}
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("%s: message %s to %s: %v", ErrPublish, e.MessageID, e.Channel, e.Cause)
}

func (e *PublishError) Unwrap() []error {
	return []error{ErrPublish, e.Cause}
}

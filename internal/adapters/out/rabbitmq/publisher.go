// Package rabbitmq publishes outbox messages to a RabbitMQ topic exchange. The routing key is
// the logical channel name.
package rabbitmq

import (
	"context"
	"errors"
	"sync"

	"ordering/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNack = errors.New("publish was nacked by the broker")

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher implements ports.MessagePublisher. Publish waits for the broker confirmation
// when a confirmation stream is given, so calls are serialized.
type Publisher struct {
	ch       Channel
	confirms <-chan amqp.Confirmation
	exchange string
	mu       sync.Mutex
}

func NewPublisher(ch Channel, confirms <-chan amqp.Confirmation, exchange string) *Publisher {
	return &Publisher{ch: ch, confirms: confirms, exchange: exchange}
}

func (p *Publisher) Publish(ctx context.Context, msg ports.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(ctx, p.exchange, string(msg.Channel), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    msg.ID,
		Type:         msg.Kind,
		Timestamp:    msg.CreatedAt,
		Headers:      amqp.Table{"key": msg.Key},
		Body:         msg.Payload,
	})
	if err != nil {
		return ports.NewPublishError(msg, err)
	}

	if p.confirms == nil {
		return nil
	}

	select {
	case confirmation, ok := <-p.confirms:
		if !ok {
			return ports.NewPublishError(msg, amqp.ErrClosed)
		}
		if !confirmation.Ack {
			return ports.NewPublishError(msg, ErrNack)
		}
		return nil
	case <-ctx.Done():
		return ports.NewPublishError(msg, ctx.Err())
	}
}

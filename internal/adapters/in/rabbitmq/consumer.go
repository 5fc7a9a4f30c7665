// Package rabbitmq consumes saga responses from RabbitMQ queues.
package rabbitmq

import (
	"context"
	"errors"

	"ordering/internal/adapters/messaging"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var ErrDeliveriesClosed = errors.New("rabbitmq deliveries channel closed")

// Consumer handles the deliveries of one queue in order. A delivery is acked once the
// processor is done with it and requeued when processing was interrupted.
type Consumer struct {
	source     string
	deliveries <-chan amqp.Delivery
	handle     messaging.HandlerFunc
	processor  *messaging.Processor
	logger     *zap.Logger
}

func NewConsumer(
	source string,
	deliveries <-chan amqp.Delivery,
	handle messaging.HandlerFunc,
	processor *messaging.Processor,
	logger *zap.Logger,
) *Consumer {
	return &Consumer{
		source:     source,
		deliveries: deliveries,
		handle:     handle,
		processor:  processor,
		logger:     logger.With(zap.String("component", "rabbitmq_consumer"), zap.String("source", source)),
	}
}

// Run blocks until ctx is cancelled, the deliveries channel closes, or a message cannot be
// processed.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started")
	defer c.logger.Info("consumer stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-c.deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			if err := c.consume(ctx, d); err != nil {
				return err
			}
		}
	}
}

func (c *Consumer) consume(ctx context.Context, d amqp.Delivery) error {
	if err := c.processor.Process(ctx, c.source, d.Body, c.handle); err != nil {
		if nackErr := d.Nack(false, true); nackErr != nil {
			c.logger.Error("nack failed", zap.String("message_id", d.MessageId), zap.Error(nackErr))
		}
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	if err := d.Ack(false); err != nil {
		return err
	}
	return nil
}

// Package kafka publishes outbox messages to Kafka topics. Messages are keyed by order id and
// written with the hash balancer, so the events of one order land on one partition in order.
package kafka

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

var ErrUnknownChannel = errors.New("no topic configured for channel")

// Writer is the subset of *kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.MessagePublisher with one writer per channel.
type Publisher struct {
	writers map[ports.Channel]Writer
}

// NewPublisher creates a writer for each channel's topic.
func NewPublisher(brokers []string, topics map[ports.Channel]string) *Publisher {
	writers := make(map[ports.Channel]Writer, len(topics))
	for channel, topic := range topics {
		writers[channel] = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		}
	}
	return NewPublisherWithWriters(writers)
}

func NewPublisherWithWriters(writers map[ports.Channel]Writer) *Publisher {
	return &Publisher{writers: writers}
}

func (p *Publisher) Publish(ctx context.Context, msg ports.Message) error {
	writer, ok := p.writers[msg.Channel]
	if !ok {
		return ports.NewPublishError(msg, fmt.Errorf("%w: %s", ErrUnknownChannel, msg.Channel))
	}

	err := writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Payload,
		Time:  msg.CreatedAt,
		Headers: []kafka.Header{
			{Key: "message-id", Value: []byte(msg.ID)},
			{Key: "type", Value: []byte(msg.Kind)},
		},
	})
	if err != nil {
		return ports.NewPublishError(msg, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	var errs []error
	for _, writer := range p.writers {
		errs = append(errs, writer.Close())
	}
	return errors.Join(errs...)
}

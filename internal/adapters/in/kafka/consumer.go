// Package kafka consumes saga responses from Kafka topics within a consumer group.
package kafka

import (
	"context"
	"errors"

	"ordering/internal/adapters/messaging"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the subset of *kafka.Reader the consumer uses.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer handles one topic partition stream in order and commits each offset only after
// the processor is done with the message.
type Consumer struct {
	source    string
	reader    Reader
	handle    messaging.HandlerFunc
	processor *messaging.Processor
	logger    *zap.Logger
}

// NewConsumer creates a consumer-group reader for topic.
func NewConsumer(
	brokers []string,
	groupID, topic string,
	handle messaging.HandlerFunc,
	processor *messaging.Processor,
	logger *zap.Logger,
) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return NewConsumerWithReader(topic, reader, handle, processor, logger)
}

func NewConsumerWithReader(
	source string,
	reader Reader,
	handle messaging.HandlerFunc,
	processor *messaging.Processor,
	logger *zap.Logger,
) *Consumer {
	return &Consumer{
		source:    source,
		reader:    reader,
		handle:    handle,
		processor: processor,
		logger:    logger.With(zap.String("component", "kafka_consumer"), zap.String("source", source)),
	}
}

// Run blocks until ctx is cancelled or a fetch, process or commit fails.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started")
	defer c.logger.Info("consumer stopped")

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if err := c.processor.Process(ctx, c.source, m.Value, c.handle); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

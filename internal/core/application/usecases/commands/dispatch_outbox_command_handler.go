package commands

import (
	"context"
	"errors"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"

	"go.uber.org/zap"
)

// DispatchOutboxCommandHandler moves committed events from the outbox to the broker.
// Messages are published in outbox order. When a message fails, later messages with the
// same key are held back so that a consumer never sees an order's events out of order.
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.MessagePublisher,
	logger *zap.Logger,
	m *metrics.Metrics,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With(zap.String("component", "outbox_dispatcher")),
		metrics:    m,
	}
}

// Handle publishes one batch and returns the number of messages published. Publish failures
// are returned joined, as *ports.PublishError values, after the successful ones are marked.
func (h *DispatchOutboxCommandHandler) Handle(ctx context.Context, cmd DispatchOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	var (
		published   = make([]string, 0, len(pending))
		blockedKeys = make(map[string]struct{})
		failures    []error
	)
	for _, msg := range pending {
		if _, blocked := blockedKeys[msg.Key]; blocked {
			continue
		}
		if err := h.publisher.Publish(ctx, msg); err != nil {
			blockedKeys[msg.Key] = struct{}{}
			failures = append(failures, ports.NewPublishError(msg, err))
			h.metrics.OutboxMessage(string(msg.Channel), "failed")
			h.logger.Warn("outbox message not published",
				zap.String("messageId", msg.ID),
				zap.String("channel", string(msg.Channel)),
				zap.String("key", msg.Key),
				zap.Error(err))
			continue
		}
		published = append(published, msg.ID)
		h.metrics.OutboxMessage(string(msg.Channel), "published")
	}

	if len(published) > 0 {
		if err := outbox.MarkPublished(ctx, published...); err != nil {
			return 0, err
		}
		if err := uow.Commit(ctx); err != nil {
			return 0, err
		}
		h.logger.Debug("outbox batch dispatched", zap.Int("published", len(published)))
	}

	return len(published), errors.Join(failures...)
}

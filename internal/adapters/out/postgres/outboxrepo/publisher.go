package outboxrepo

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// Encoder turns a domain event into the message stored in the outbox.
type Encoder interface {
	Encode(channel ports.Channel, event order.Event) (ports.Message, error)
}

// EventPublisher implements ports.EventPublisher by writing to the outbox. Nothing leaves the
// database until the dispatcher reads the committed rows.
type EventPublisher struct {
	repo     ports.OutboxRepository
	encoder  Encoder
	onStaged func(ports.Message)
}

// NewEventPublisher creates a publisher writing through repo. onStaged, when not nil, is
// called for every stored message.
func NewEventPublisher(repo ports.OutboxRepository, encoder Encoder, onStaged func(ports.Message)) *EventPublisher {
	return &EventPublisher{repo: repo, encoder: encoder, onStaged: onStaged}
}

func (p *EventPublisher) Publish(ctx context.Context, channel ports.Channel, event order.Event) error {
	msg, err := p.encoder.Encode(channel, event)
	if err != nil {
		return err
	}
	if err := p.repo.Add(ctx, msg); err != nil {
		return err
	}
	if p.onStaged != nil {
		p.onStaged(msg)
	}
	return nil
}

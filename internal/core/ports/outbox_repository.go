package ports

import "context"

// OutboxRepository stores encoded events in the same transaction as the aggregate change.
type OutboxRepository interface {
	Add(ctx context.Context, msg Message) error

	// GetPending returns up to limit unpublished messages in insertion order.
	GetPending(ctx context.Context, limit int) ([]Message, error)

	MarkPublished(ctx context.Context, ids ...string) error
}

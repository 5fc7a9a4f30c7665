package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories and the event publisher it
// hands out all work inside the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the transaction. Events staged through EventPublisher become
	// deliverable only after Commit succeeds.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CustomerRepository() CustomerRepository
	RestaurantRepository() RestaurantRepository
	OutboxRepository() OutboxRepository
	EventPublisher() EventPublisher
}

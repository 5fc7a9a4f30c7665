// Package postgres provides the GORM-based Unit of Work used by every command handler.
//
// A unit of work wraps one database transaction. The repositories it hands out, and the
// outbox-backed EventPublisher, all run inside that transaction once Begin was called and
// on the plain connection otherwise.
//
// Usage:
//
//	factory := postgres.NewGormUnitOfWorkFactory(db, messaging.NewCodec(),
//	    postgres.WithAfterCommit(dispatchJob.Notify),
//	)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	saved, err := uow.OrderRepository().Add(ctx, o)
//	if err != nil {
//	    return err
//	}
//	if err := uow.EventPublisher().Publish(ctx, ports.PaymentRequestChannel, event); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // after-commit hooks run here when events were staged
//
// Concurrency:
//   - each UnitOfWork instance owns its transaction and must not be shared between goroutines
//   - conflicting order updates are detected by the order repository's version check
package postgres

import (
	"context"

	"ordering/internal/adapters/out/postgres/customerrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/postgres/restaurantrepo"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// Option configures a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithAfterCommit registers a hook called after every successful commit that staged at least
// one event. Hooks must not block.
func WithAfterCommit(hook func()) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.afterCommit = append(f.afterCommit, hook)
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM connection pool.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	encoder     outboxrepo.Encoder
	afterCommit []func()
}

func NewGormUnitOfWorkFactory(db *gorm.DB, encoder outboxrepo.Encoder, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db, encoder: encoder}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:          f.db,
		encoder:     f.encoder,
		afterCommit: f.afterCommit,
	}
}

// GormUnitOfWork coordinates one database transaction and remembers the events staged in
// it, so that after-commit hooks fire only for transactions that produced messages.
type GormUnitOfWork struct {
	db          *gorm.DB
	tx          *gorm.DB
	encoder     outboxrepo.Encoder
	afterCommit []func()
	staged      []ports.Message
}

// Begin starts the transaction. Calling Begin on an active unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.staged = nil
	return nil
}

// Commit commits the transaction and runs the after-commit hooks if any event was staged.
// Without an active transaction it returns gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil

	staged := uow.staged
	uow.staged = nil
	if err != nil {
		return err
	}

	if len(staged) > 0 {
		for _, hook := range uow.afterCommit {
			hook()
		}
	}
	return nil
}

// Rollback discards the transaction and the staged events. Without an active transaction it
// returns gorm.ErrInvalidTransaction, which deferred rollbacks after a commit ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.staged = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) RestaurantRepository() ports.RestaurantRepository {
	return restaurantrepo.NewGormRestaurantRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// EventPublisher returns a publisher that writes to the outbox in the current transaction.
func (uow *GormUnitOfWork) EventPublisher() ports.EventPublisher {
	return outboxrepo.NewEventPublisher(uow.OutboxRepository(), uow.encoder, uow.trackMessage)
}

// StagedMessages returns the messages written to the outbox since Begin.
func (uow *GormUnitOfWork) StagedMessages() []ports.Message {
	return append([]ports.Message(nil), uow.staged...)
}

func (uow *GormUnitOfWork) trackMessage(msg ports.Message) {
	uow.staged = append(uow.staged, msg)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// Package commands contains the write side of the ordering service: order creation, the
// saga responders for payment and restaurant approval responses, and outbox dispatch.
// Every handler follows the same pattern: validate the command, open a unit of work, load,
// apply domain logic, persist, stage events, commit.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// EventPublisherFactory gives access to the publisher bound to the transaction.
	// Events published through it are delivered only after Commit.
	EventPublisherFactory interface {
		EventPublisher() ports.EventPublisher
	}

	// CreateOrderUoW is used by order creation: it reads customers and restaurants,
	// stores the order and stages the Created event.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   saved, err := uow.OrderRepository().Add(ctx, o)
	//   err = uow.EventPublisher().Publish(ctx, ports.PaymentRequestChannel, event)
	//
	//   err = uow.Commit(ctx)
	CreateOrderUoW interface {
		TxManager
		CustomerRepoFactory
		RestaurantRepoFactory
		OrderRepoFactory
		EventPublisherFactory
	}

	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// SagaUoW is used by the payment and restaurant approval responders.
	SagaUoW interface {
		TxManager
		OrderRepoFactory
		EventPublisherFactory
	}

	SagaUoWFactory interface {
		Create() SagaUoW
	}

	// OutboxUoW is used by the outbox dispatcher.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

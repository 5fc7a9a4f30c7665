package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"

	"go.uber.org/zap"
)

const (
	outcomeApplied   = "applied"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

// stagedEvent is an event a saga step wants published once its transaction commits.
type stagedEvent struct {
	channel ports.Channel
	event   order.Event
}

// sagaStep runs one saga transition against a stored order inside its own unit of work.
// Redelivered responses whose transition is already applied are acknowledged without
// touching the order.
type sagaStep struct {
	uowFactory    SagaUoWFactory
	domainService services.OrderDomainService
	logger        *zap.Logger
	metrics       *metrics.Metrics
	source        string
}

// statusShows adapts a status predicate to the check run expects.
func statusShows(applied func(order.Status) bool) func(o *order.Order) bool {
	return func(o *order.Order) bool { return applied(o.Status()) }
}

func (s sagaStep) run(
	ctx context.Context,
	operation string,
	orderID kernel.OrderID,
	alreadyApplied func(o *order.Order) bool,
	transition func(o *order.Order) (*stagedEvent, error),
) (err error) {
	logger := s.logger.With(zap.String("operation", operation), zap.String("orderId", orderID.String()))

	duplicate := false
	defer func() {
		switch {
		case err != nil:
			s.metrics.SagaResponse(s.source, outcomeFailed)
			if errors.Is(err, order.ErrInvalidOrderState) {
				logger.Warn("saga response does not fit order state", zap.Error(err))
			}
		case duplicate:
			s.metrics.SagaResponse(s.source, outcomeDuplicate)
		default:
			s.metrics.SagaResponse(s.source, outcomeApplied)
		}
	}()

	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return asNotFound(ErrOrderNotFound, err)
	}

	if alreadyApplied(o) {
		duplicate = true
		logger.Info("saga response already applied", zap.Stringer("status", o.Status()))
		return nil
	}

	staged, err := transition(o)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if staged != nil {
		if err = uow.EventPublisher().Publish(ctx, staged.channel, staged.event); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	logger.Info("saga step applied", zap.Stringer("status", o.Status()))
	return nil
}

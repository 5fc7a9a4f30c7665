package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"

	"go.uber.org/zap"
)

// PaymentResponseHandler reacts to the payment service.
//
//	COMPLETED           PENDING -> PAID, Paid event to restaurant approval
//	CANCELLED / FAILED  PENDING or CANCELLING -> CANCELLED
//	                    PAID -> CANCELLING, Cancelled event to payment for a refund
//
// Example:
//
//	handler := NewPaymentResponseHandler(uowFactory, services.NewOrderDomainService(), logger, m)
//	if cmd.Status() == PaymentStatusCompleted {
//	    err = handler.PaymentCompleted(ctx, cmd)
//	} else {
//	    err = handler.PaymentCancelled(ctx, cmd)
//	}
type PaymentResponseHandler struct {
	step sagaStep
}

func NewPaymentResponseHandler(
	uowFactory SagaUoWFactory,
	domainService services.OrderDomainService,
	logger *zap.Logger,
	m *metrics.Metrics,
) PaymentResponseHandler {
	return PaymentResponseHandler{
		step: sagaStep{
			uowFactory:    uowFactory,
			domainService: domainService,
			logger:        logger.With(zap.String("component", "payment_response")),
			metrics:       m,
			source:        "payment",
		},
	}
}

// PaymentCompleted marks the order paid and asks the restaurant for approval.
// A redelivery for an order that has been paid is a no-op, also when the order has since
// been refunded and cancelled.
func (h *PaymentResponseHandler) PaymentCompleted(ctx context.Context, cmd PaymentResponseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.step.run(ctx, "payment_completed", cmd.OrderID(), (*order.Order).HasBeenPaid,
		func(o *order.Order) (*stagedEvent, error) {
			event, err := h.step.domainService.PayOrder(o)
			if err != nil {
				return nil, err
			}
			return &stagedEvent{channel: ports.RestaurantApprovalRequestChannel, event: event}, nil
		})
}

// PaymentCancelled ends the saga as cancelled when payment failed for a PENDING order or the
// refund for a CANCELLING order went through. A PAID order is compensated instead: it moves
// to CANCELLING and the payment service is asked for a refund.
func (h *PaymentResponseHandler) PaymentCancelled(ctx context.Context, cmd PaymentResponseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.step.run(ctx, "payment_cancelled", cmd.OrderID(), statusShows(order.Status.HasBeenCancelled),
		func(o *order.Order) (*stagedEvent, error) {
			if o.Status() == order.Paid {
				event, err := h.step.domainService.CancelOrderPayment(o, cmd.FailureMessages())
				if err != nil {
					return nil, err
				}
				return &stagedEvent{channel: ports.PaymentRequestChannel, event: event}, nil
			}
			return nil, h.step.domainService.CancelOrder(o, cmd.FailureMessages())
		})
}

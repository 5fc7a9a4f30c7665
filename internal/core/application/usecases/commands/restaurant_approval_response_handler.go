package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"

	"go.uber.org/zap"
)

// RestaurantApprovalResponseHandler reacts to the restaurant's decision.
//
//	APPROVED  PAID -> APPROVED, saga ends
//	REJECTED  PAID -> CANCELLING, Cancelled event to payment for a refund
type RestaurantApprovalResponseHandler struct {
	step sagaStep
}

func NewRestaurantApprovalResponseHandler(
	uowFactory SagaUoWFactory,
	domainService services.OrderDomainService,
	logger *zap.Logger,
	m *metrics.Metrics,
) RestaurantApprovalResponseHandler {
	return RestaurantApprovalResponseHandler{
		step: sagaStep{
			uowFactory:    uowFactory,
			domainService: domainService,
			logger:        logger.With(zap.String("component", "restaurant_approval_response")),
			metrics:       m,
			source:        "restaurant_approval",
		},
	}
}

func (h *RestaurantApprovalResponseHandler) OrderApproved(
	ctx context.Context,
	cmd RestaurantApprovalResponseCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.step.run(ctx, "order_approved", cmd.OrderID(), statusShows(order.Status.HasBeenApproved),
		func(o *order.Order) (*stagedEvent, error) {
			return nil, h.step.domainService.ApproveOrder(o)
		})
}

// OrderRejected starts compensation: the order moves to CANCELLING with the rejection
// reasons and the payment service is asked to refund.
func (h *RestaurantApprovalResponseHandler) OrderRejected(
	ctx context.Context,
	cmd RestaurantApprovalResponseCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.step.run(ctx, "order_rejected", cmd.OrderID(), statusShows(order.Status.HasCancelBeenInitiated),
		func(o *order.Order) (*stagedEvent, error) {
			event, err := h.step.domainService.CancelOrderPayment(o, cmd.FailureMessages())
			if err != nil {
				return nil, err
			}
			return &stagedEvent{channel: ports.PaymentRequestChannel, event: event}, nil
		})
}

package messaging

import (
	"context"

	"ordering/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// HandlerFunc processes one raw inbound payload.
type HandlerFunc func(ctx context.Context, payload []byte) error

type PaymentResponseHandler interface {
	PaymentCompleted(ctx context.Context, cmd commands.PaymentResponseCommand) error
	PaymentCancelled(ctx context.Context, cmd commands.PaymentResponseCommand) error
}

type RestaurantApprovalResponseHandler interface {
	OrderApproved(ctx context.Context, cmd commands.RestaurantApprovalResponseCommand) error
	OrderRejected(ctx context.Context, cmd commands.RestaurantApprovalResponseCommand) error
}

// Router decodes saga responses and dispatches them by status:
//   - payment COMPLETED goes to PaymentCompleted, CANCELLED and FAILED to PaymentCancelled
//   - approval APPROVED goes to OrderApproved, REJECTED to OrderRejected
type Router struct {
	payment  PaymentResponseHandler
	approval RestaurantApprovalResponseHandler
	logger   *zap.Logger
}

func NewRouter(
	payment PaymentResponseHandler,
	approval RestaurantApprovalResponseHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		payment:  payment,
		approval: approval,
		logger:   logger.With(zap.String("component", "saga_router")),
	}
}

func (r *Router) HandlePaymentResponse(ctx context.Context, payload []byte) error {
	cmd, err := DecodePaymentResponse(payload)
	if err != nil {
		return err
	}

	r.logger.Debug("payment response received",
		zap.String("order_id", cmd.OrderID().String()),
		zap.String("saga_id", cmd.SagaID()),
		zap.Stringer("payment_status", cmd.Status()),
	)

	if cmd.Status() == commands.PaymentStatusCompleted {
		return r.payment.PaymentCompleted(ctx, cmd)
	}
	return r.payment.PaymentCancelled(ctx, cmd)
}

func (r *Router) HandleRestaurantApprovalResponse(ctx context.Context, payload []byte) error {
	cmd, err := DecodeRestaurantApprovalResponse(payload)
	if err != nil {
		return err
	}

	r.logger.Debug("restaurant approval response received",
		zap.String("order_id", cmd.OrderID().String()),
		zap.String("saga_id", cmd.SagaID()),
		zap.Stringer("approval_status", cmd.Status()),
	)

	if cmd.Status() == commands.ApprovalStatusApproved {
		return r.approval.OrderApproved(ctx, cmd)
	}
	return r.approval.OrderRejected(ctx, cmd)
}

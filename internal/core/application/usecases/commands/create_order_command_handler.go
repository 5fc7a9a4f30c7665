package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"

	"go.uber.org/zap"
)

const orderCreatedMessage = "Order created successfully"

// CreateOrderResponse is returned to the customer after the order has been committed.
type CreateOrderResponse struct {
	OrderTrackingID kernel.TrackingID
	OrderStatus     order.Status
	Message         string
}

// CreateOrderCommandHandler starts the saga: it validates a new order against the customer
// and restaurant projections, stores it as PENDING and stages the Created event for the
// payment service in the same transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, services.NewOrderDomainService(), logger, m)
//	resp, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrDomainValidation) {
//	    // reject the request
//	}
//	fmt.Println(resp.OrderTrackingID, resp.OrderStatus) // <uuid> PENDING
type CreateOrderCommandHandler struct {
	uowFactory    CreateOrderUoWFactory
	domainService services.OrderDomainService
	logger        *zap.Logger
	metrics       *metrics.Metrics
}

func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	domainService services.OrderDomainService,
	logger *zap.Logger,
	m *metrics.Metrics,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		domainService: domainService,
		logger:        logger.With(zap.String("component", "create_order")),
		metrics:       m,
	}
}

// Handle creates the order. Nothing is stored and no event is staged unless every check
// passes, and the event only becomes deliverable when the commit succeeds.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CustomerRepository().FindCustomer(ctx, cmd.CustomerID()); err != nil {
		return CreateOrderResponse{}, asNotFound(ErrCustomerNotFound, err)
	}

	r, err := uow.RestaurantRepository().FindRestaurantInformation(ctx, cmd.RestaurantID(), cmd.ProductIDs())
	if err != nil {
		return CreateOrderResponse{}, asNotFound(ErrRestaurantNotFound, err)
	}

	newOrder, err := h.toOrder(cmd)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	event, err := h.domainService.ValidateAndInitializeOrder(newOrder, r)
	if err != nil {
		h.logger.Info("order rejected",
			zap.String("customerId", cmd.CustomerID().String()),
			zap.String("restaurantId", cmd.RestaurantID().String()),
			zap.Error(err))
		return CreateOrderResponse{}, err
	}

	saved, err := uow.OrderRepository().Add(ctx, newOrder)
	if err != nil {
		return CreateOrderResponse{}, err
	}
	if saved == nil {
		return CreateOrderResponse{}, ErrOrderPersistence
	}

	if err = uow.EventPublisher().Publish(ctx, ports.PaymentRequestChannel, event); err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	h.metrics.OrderCreated()
	h.logger.Info("order created",
		zap.String("orderId", saved.ID().String()),
		zap.String("trackingId", saved.TrackingID().String()))

	return CreateOrderResponse{
		OrderTrackingID: saved.TrackingID(),
		OrderStatus:     saved.Status(),
		Message:         orderCreatedMessage,
	}, nil
}

func (h *CreateOrderCommandHandler) toOrder(cmd CreateOrderCommand) (*order.Order, error) {
	address, err := kernel.NewStreetAddress(
		kernel.NewUUID(),
		cmd.Address().Street,
		cmd.Address().PostalCode,
		cmd.Address().City,
	)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, in := range cmd.Items() {
		product, err := restaurant.NewProductReference(in.ProductID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(product, in.Quantity, in.Price, in.Subtotal)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.NewOrder(cmd.CustomerID(), cmd.RestaurantID(), address, cmd.Price(), items)
}

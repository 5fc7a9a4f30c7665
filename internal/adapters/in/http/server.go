// Package http exposes order creation and tracking over a JSON API served by Echo. Requests
// are validated against the embedded OpenAPI document before they reach a handler.
package http

import (
	"context"
	"fmt"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResponse, error)
}

type TrackOrderHandler interface {
	Handle(ctx context.Context, query queries.TrackOrderQuery) (queries.TrackOrderQueryResponse, error)
}

// HealthCheck reports whether the service's dependencies are reachable.
type HealthCheck func(ctx context.Context) error

// Server handles the HTTP API. It only translates between JSON and the application's
// commands and queries.
type Server struct {
	createOrderHandler CreateOrderHandler
	trackOrderHandler  TrackOrderHandler
	health             HealthCheck
	logger             *zap.Logger
	metrics            *metrics.Metrics
	gatherer           prometheus.Gatherer
}

// Option configures optional Server collaborators.
type Option func(*Server)

func WithHealthCheck(check HealthCheck) Option {
	return func(s *Server) { s.health = check }
}

// WithMetrics records request metrics in m and serves g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	trackOrderHandler TrackOrderHandler,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		createOrderHandler: createOrderHandler,
		trackOrderHandler:  trackOrderHandler,
		logger:             logger.With(zap.String("component", "http")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}

	cmd, err := toCreateOrderCommand(req)
	if err != nil {
		return err
	}

	resp, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreateOrderResponse{
		OrderTrackingID: resp.OrderTrackingID.String(),
		OrderStatus:     resp.OrderStatus.String(),
		Message:         resp.Message,
	})
}

// TrackOrder handles GET /api/v1/orders/{trackingId}.
func (s *Server) TrackOrder(c echo.Context) error {
	var rawTrackingID string
	err := runtime.BindStyledParameterWithOptions("simple", "trackingId", c.Param("trackingId"), &rawTrackingID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return fmt.Errorf("%w: trackingId: %w", errInvalidRequest, err)
	}

	trackingID, err := kernel.TrackingIDFromString(rawTrackingID)
	if err != nil {
		return fmt.Errorf("%w: trackingId: %w", errInvalidRequest, err)
	}

	query, err := queries.NewTrackOrderQuery(trackingID)
	if err != nil {
		return err
	}

	resp, err := s.trackOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TrackOrderResponse{
		OrderTrackingID: resp.OrderTrackingID,
		OrderStatus:     resp.OrderStatus.String(),
		FailureMessages: resp.FailureMessages,
	})
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	if s.health != nil {
		if err := s.health(c.Request().Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "DOWN"})
		}
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "UP"})
}

func toCreateOrderCommand(req CreateOrderRequest) (commands.CreateOrderCommand, error) {
	customerID, err := kernel.CustomerIDFromString(req.CustomerID)
	if err != nil {
		return commands.CreateOrderCommand{}, fmt.Errorf("%w: customerId: %w", errInvalidRequest, err)
	}
	restaurantID, err := kernel.RestaurantIDFromString(req.RestaurantID)
	if err != nil {
		return commands.CreateOrderCommand{}, fmt.Errorf("%w: restaurantId: %w", errInvalidRequest, err)
	}
	price, err := kernel.MoneyFromString(req.Price)
	if err != nil {
		return commands.CreateOrderCommand{}, fmt.Errorf("%w: price: %w", errInvalidRequest, err)
	}

	items := make([]commands.CreateOrderItem, 0, len(req.Items))
	for i, item := range req.Items {
		converted, itemErr := toCreateOrderItem(item)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, fmt.Errorf("%w: items[%d]: %w", errInvalidRequest, i, itemErr)
		}
		items = append(items, converted)
	}

	return commands.NewCreateOrderCommand(customerID, restaurantID, price, items, commands.CreateOrderAddress{
		Street:     req.Address.Street,
		PostalCode: req.Address.PostalCode,
		City:       req.Address.City,
	})
}

func toCreateOrderItem(item OrderItemRequest) (commands.CreateOrderItem, error) {
	productID, err := kernel.ProductIDFromString(item.ProductID)
	if err != nil {
		return commands.CreateOrderItem{}, fmt.Errorf("productId: %w", err)
	}
	price, err := kernel.MoneyFromString(item.Price)
	if err != nil {
		return commands.CreateOrderItem{}, fmt.Errorf("price: %w", err)
	}
	subtotal, err := kernel.MoneyFromString(item.SubTotal)
	if err != nil {
		return commands.CreateOrderItem{}, fmt.Errorf("subTotal: %w", err)
	}
	return commands.CreateOrderItem{
		ProductID: productID,
		Quantity:  item.Quantity,
		Price:     price,
		Subtotal:  subtotal,
	}, nil
}

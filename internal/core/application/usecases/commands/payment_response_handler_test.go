package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sagaMocks struct {
	uow       *MockUoW
	orders    *MockOrderRepository
	publisher *MockEventPublisher
}

func newSagaMocks() sagaMocks {
	return sagaMocks{uow: new(MockUoW), orders: new(MockOrderRepository), publisher: new(MockEventPublisher)}
}

func (m sagaMocks) factory() MockSagaUoWFactory {
	return MockSagaUoWFactory{uow: m.uow}
}

func (m sagaMocks) assertExpectations(t *testing.T) {
	m.uow.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

// expectLoad sets up Begin, the order lookup and the deferred Rollback.
func (m sagaMocks) expectLoad(t *testing.T, o *order.Order) {
	ctx := t.Context()
	m.uow.On("Begin", ctx).Return(nil).Once()
	m.uow.On("OrderRepository").Return(m.orders).Once()
	m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()
}

func TestPaymentResponseHandler_PaymentCompleted(t *testing.T) {
	t.Run("should pay pending order and request restaurant approval", func(t *testing.T) {
		ctx := t.Context()
		o := storedOrder(t, order.Pending)
		m := newSagaMocks()
		m.expectLoad(t, o)

		var published order.Event
		m.orders.On("Update", ctx, o).Return(nil).Once()
		m.uow.On("EventPublisher").Return(m.publisher).Once()
		m.publisher.On("Publish", ctx, ports.RestaurantApprovalRequestChannel, mock.AnythingOfType("order.Event")).
			Run(func(args mock.Arguments) { published = args.Get(2).(order.Event) }).
			Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		reg := prometheus.NewRegistry()
		h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), metrics.New(reg))
		err := h.PaymentCompleted(ctx, paymentResponse(t, o, commands.PaymentStatusCompleted))

		require.NoError(t, err)
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, order.EventPaid, published.Kind())
		assert.Equal(t, o.ID(), published.Order().ID)
		m.assertExpectations(t)

		count, err := testutil.GatherAndCount(reg, "ordering_saga_responses_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	for _, status := range []order.Status{order.Paid, order.Approved, order.Cancelling} {
		t.Run("duplicate for "+status.String()+" order is a no-op", func(t *testing.T) {
			ctx := t.Context()
			o := storedOrder(t, status)
			m := newSagaMocks()
			m.expectLoad(t, o)

			h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)
			err := h.PaymentCompleted(ctx, paymentResponse(t, o, commands.PaymentStatusCompleted))

			require.NoError(t, err)
			assert.Equal(t, status, o.Status())
			m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			m.uow.AssertNotCalled(t, "Commit", mock.Anything)
			m.assertExpectations(t)
		})
	}

	t.Run("duplicate for refunded and cancelled order is a no-op", func(t *testing.T) {
		ctx := t.Context()
		o := storedOrderWithPayment(t, order.Cancelled, true)
		m := newSagaMocks()
		m.expectLoad(t, o)

		h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)
		err := h.PaymentCompleted(ctx, paymentResponse(t, o, commands.PaymentStatusCompleted))

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.True(t, o.HasBeenPaid())
		m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("should surface invalid state for order cancelled before payment", func(t *testing.T) {
		ctx := t.Context()
		o := storedOrder(t, order.Cancelled)
		m := newSagaMocks()
		m.expectLoad(t, o)

		h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)
		err := h.PaymentCompleted(ctx, paymentResponse(t, o, commands.PaymentStatusCompleted))

		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
		m.assertExpectations(t)
	})

	t.Run("should report missing order", func(t *testing.T) {
		ctx := t.Context()
		o := storedOrder(t, order.Pending)
		m := newSagaMocks()
		m.uow.On("Begin", ctx).Return(nil).Once()
		m.uow.On("OrderRepository").Return(m.orders).Once()
		m.orders.On("Get", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("orderId", o.ID())).Once()
		m.uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)
		err := h.PaymentCompleted(ctx, paymentResponse(t, o, commands.PaymentStatusCompleted))

		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
		m.assertExpectations(t)
	})

	t.Run("should propagate concurrent modification", func(t *testing.T) {
		ctx := t.Context()
		o := storedOrder(t, order.Pending)
		m := newSagaMocks()
		m.expectLoad(t, o)
		m.orders.On("Update", ctx, o).Return(ports.ErrConcurrentModification).Once()

		h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)
		err := h.PaymentCompleted(ctx, paymentResponse(t, o, commands.PaymentStatusCompleted))

		assert.ErrorIs(t, err, ports.ErrConcurrentModification)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
		m.assertExpectations(t)
	})
}

func TestPaymentResponseHandler_PaymentCancelled(t *testing.T) {
	for _, status := range []order.Status{order.Pending, order.Cancelling} {
		t.Run("should cancel "+status.String()+" order", func(t *testing.T) {
			ctx := t.Context()
			o := storedOrder(t, status)
			m := newSagaMocks()
			m.expectLoad(t, o)
			m.orders.On("Update", ctx, o).Return(nil).Once()
			m.uow.On("Commit", ctx).Return(nil).Once()

			h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)
			err := h.PaymentCancelled(ctx, paymentResponse(t, o, commands.PaymentStatusFailed, "card declined"))

			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, o.Status())
			assert.Equal(t, []string{"card declined"}, o.FailureMessages())
			m.uow.AssertNotCalled(t, "EventPublisher")
			m.assertExpectations(t)
		})
	}

	t.Run("duplicate for cancelled order is a no-op", func(t *testing.T) {
		ctx := t.Context()
		o := storedOrder(t, order.Cancelled)
		m := newSagaMocks()
		m.expectLoad(t, o)

		h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)
		err := h.PaymentCancelled(ctx, paymentResponse(t, o, commands.PaymentStatusCancelled))

		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("should start compensation for paid order", func(t *testing.T) {
		ctx := t.Context()
		o := storedOrder(t, order.Paid)
		m := newSagaMocks()
		m.expectLoad(t, o)

		var published order.Event
		m.orders.On("Update", ctx, o).Return(nil).Once()
		m.uow.On("EventPublisher").Return(m.publisher).Once()
		m.publisher.On("Publish", ctx, ports.PaymentRequestChannel, mock.AnythingOfType("order.Event")).
			Run(func(args mock.Arguments) { published = args.Get(2).(order.Event) }).
			Return(nil).Once()
		m.uow.On("Commit", ctx).Return(nil).Once()

		h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)
		err := h.PaymentCancelled(ctx, paymentResponse(t, o, commands.PaymentStatusCancelled, "card declined"))

		require.NoError(t, err)
		assert.Equal(t, order.Cancelling, o.Status())
		assert.Equal(t, []string{"card declined"}, o.FailureMessages())
		assert.Equal(t, order.EventCancelled, published.Kind())
		assert.Equal(t, o.ID(), published.Order().ID)
		m.assertExpectations(t)
	})

	t.Run("should surface invalid state for approved order", func(t *testing.T) {
		ctx := t.Context()
		o := storedOrder(t, order.Approved)
		m := newSagaMocks()
		m.expectLoad(t, o)

		h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)
		err := h.PaymentCancelled(ctx, paymentResponse(t, o, commands.PaymentStatusCancelled, "refund"))

		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
		assert.Empty(t, o.FailureMessages())
		m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})
}

func TestPaymentResponseHandler_ValidationError(t *testing.T) {
	m := newSagaMocks()
	h := commands.NewPaymentResponseHandler(m.factory(), domainService(), zap.NewNop(), nil)

	err := h.PaymentCompleted(t.Context(), commands.PaymentResponseCommand{})

	require.ErrorIs(t, err, commands.ErrPaymentResponseCommandIsNotConstructed)
	m.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

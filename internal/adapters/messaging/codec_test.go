package messaging_test

import (
	"encoding/json"
	"testing"
	"time"

	"ordering/internal/adapters/messaging"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()

	product, err := restaurant.NewProduct(kernel.ProductID{UUID: kernel.NewUUID()}, "pizza", mustMoney(t, "5.00"))
	require.NoError(t, err)
	item, err := order.NewItem(product, 2, mustMoney(t, "5.00"), mustMoney(t, "10.00"))
	require.NoError(t, err)
	address, err := kernel.NewStreetAddress(kernel.NewUUID(), "street_1", "1000AB", "Amsterdam")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.CustomerID{UUID: kernel.NewUUID()},
		kernel.RestaurantID{UUID: kernel.NewUUID()},
		address,
		mustMoney(t, "10.00"),
		[]*order.Item{item},
	)
	require.NoError(t, err)
	require.NoError(t, o.InitializeOrder())
	return o
}

func TestCodec_Encode(t *testing.T) {
	o := pendingOrder(t)
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	msg, err := messaging.NewCodec().Encode(ports.PaymentRequestChannel, order.NewOrderCreatedEvent(o, createdAt))
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, ports.PaymentRequestChannel, msg.Channel)
	assert.Equal(t, o.ID().String(), msg.Key)
	assert.Equal(t, "ORDER_CREATED", msg.Kind)
	assert.Equal(t, createdAt, msg.CreatedAt)

	var body messaging.OrderEventMessage
	require.NoError(t, json.Unmarshal(msg.Payload, &body))
	assert.Equal(t, msg.ID, body.ID)
	assert.Equal(t, "ORDER_CREATED", body.Type)
	assert.Equal(t, o.ID().String(), body.SagaID)
	assert.Equal(t, o.ID().String(), body.OrderID)
	assert.Equal(t, o.TrackingID().String(), body.TrackingID)
	assert.Equal(t, "10.00", body.Price)
	assert.Equal(t, "PENDING", body.Status)
	assert.Equal(t, "Amsterdam", body.Address.City)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "pizza", body.Items[0].ProductName)
	assert.Equal(t, 2, body.Items[0].Quantity)
	assert.Equal(t, "10.00", body.Items[0].SubTotal)
	assert.Empty(t, body.FailureMessages)
}

func TestCodec_Encode_RejectsEventWithoutOrderID(t *testing.T) {
	_, err := messaging.NewCodec().Encode(ports.PaymentRequestChannel, order.Event{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestDecodePaymentResponse(t *testing.T) {
	orderID := kernel.NewOrderID()

	t.Run("should decode a completed payment", func(t *testing.T) {
		payload := []byte(`{
			"id": "r-1", "sagaId": "` + orderID.String() + `", "orderId": "` + orderID.String() + `",
			"paymentId": "p-1", "customerId": "` + kernel.NewUUID().String() + `",
			"price": "13.50", "paymentStatus": "COMPLETED",
			"createdAt": "2024-05-01T12:00:00Z", "failureMessages": []
		}`)

		cmd, err := messaging.DecodePaymentResponse(payload)
		require.NoError(t, err)
		assert.Equal(t, "r-1", cmd.ID())
		assert.True(t, cmd.OrderID().IsEqual(orderID.UUID))
		assert.Equal(t, commands.PaymentStatusCompleted, cmd.Status())
		assert.True(t, cmd.Price().IsEqual(mustMoney(t, "13.50")))
	})

	t.Run("should accept a numeric price and failure messages", func(t *testing.T) {
		payload := []byte(`{"orderId": "` + orderID.String() + `", "price": 13.5,
			"paymentStatus": "FAILED", "failureMessages": ["card declined"]}`)

		cmd, err := messaging.DecodePaymentResponse(payload)
		require.NoError(t, err)
		assert.Equal(t, commands.PaymentStatusFailed, cmd.Status())
		assert.Equal(t, []string{"card declined"}, cmd.FailureMessages())
	})

	tests := []struct {
		name    string
		payload string
	}{
		{"should reject invalid json", `{`},
		{"should reject a missing order id", `{"paymentStatus": "COMPLETED"}`},
		{"should reject an unknown status", `{"orderId": "` + orderID.String() + `", "paymentStatus": "PENDING"}`},
		{"should reject a negative price", `{"orderId": "` + orderID.String() + `", "paymentStatus": "COMPLETED", "price": "-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := messaging.DecodePaymentResponse([]byte(tt.payload))
			require.ErrorIs(t, err, messaging.ErrMalformedMessage)
			assert.False(t, messaging.IsRetryable(err))
		})
	}
}

func TestDecodeRestaurantApprovalResponse(t *testing.T) {
	orderID := kernel.NewOrderID()

	t.Run("should decode a rejection", func(t *testing.T) {
		payload := []byte(`{"id": "r-2", "orderId": "` + orderID.String() + `",
			"restaurantId": "` + kernel.NewUUID().String() + `",
			"orderApprovalStatus": "REJECTED", "failureMessages": ["insufficient stock"]}`)

		cmd, err := messaging.DecodeRestaurantApprovalResponse(payload)
		require.NoError(t, err)
		assert.Equal(t, commands.ApprovalStatusRejected, cmd.Status())
		assert.Equal(t, []string{"insufficient stock"}, cmd.FailureMessages())
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		payload := []byte(`{"orderId": "` + orderID.String() + `", "orderApprovalStatus": "MAYBE"}`)

		_, err := messaging.DecodeRestaurantApprovalResponse(payload)
		require.ErrorIs(t, err, messaging.ErrMalformedMessage)
	})
}

package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

// newItem builds an item whose product is already confirmed at catalogPrice.
func newItem(t *testing.T, catalogPrice string, quantity int, price, subtotal string) *order.Item {
	t.Helper()
	product, err := restaurant.NewProduct(kernel.ProductID{UUID: kernel.NewUUID()}, "product", mustMoney(t, catalogPrice))
	require.NoError(t, err)
	item, err := order.NewItem(product, quantity, mustMoney(t, price), mustMoney(t, subtotal))
	require.NoError(t, err)
	return item
}

func newAddress(t *testing.T) kernel.StreetAddress {
	t.Helper()
	addr, err := kernel.NewStreetAddress(kernel.NewUUID(), "street_1", "1000AB", "Amsterdam")
	require.NoError(t, err)
	return addr
}

func newOrder(t *testing.T, total string, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.CustomerID{UUID: kernel.NewUUID()},
		kernel.RestaurantID{UUID: kernel.NewUUID()},
		newAddress(t),
		mustMoney(t, total),
		items,
	)
	require.NoError(t, err)
	return o
}

// validOrder returns the two-item 13.50 order used across these tests.
func validOrder(t *testing.T) *order.Order {
	t.Helper()
	return newOrder(t, "13.50",
		newItem(t, "5.00", 2, "5.00", "10.00"),
		newItem(t, "3.50", 1, "3.50", "3.50"),
	)
}

func initializedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := validOrder(t)
	require.NoError(t, o.InitializeOrder())
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create unpersisted order", func(t *testing.T) {
		o := validOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Unknown, o.Status())
		assert.Error(t, o.ID().Validate())
		assert.Error(t, o.TrackingID().Validate())
		assert.Len(t, o.Items(), 2)
		assert.Empty(t, o.FailureMessages())
		assert.Zero(t, o.Version())
	})

	t.Run("should collect every invalid argument", func(t *testing.T) {
		o, err := order.NewOrder(kernel.CustomerID{}, kernel.RestaurantID{}, kernel.StreetAddress{}, kernel.ZeroMoney, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, order.ErrItemsRequired)
		assert.Contains(t, err.Error(), "customerId")
		assert.Contains(t, err.Error(), "restaurantId")
		assert.Contains(t, err.Error(), "address")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_InitializeOrder(t *testing.T) {
	t.Run("should assign ids and move to pending", func(t *testing.T) {
		o := validOrder(t)

		require.NoError(t, o.InitializeOrder())

		require.NoError(t, o.ID().Validate())
		require.NoError(t, o.TrackingID().Validate())
		assert.NotEqual(t, o.ID().String(), o.TrackingID().String())
		assert.Equal(t, order.Pending, o.Status())
		for _, item := range o.Items() {
			require.NoError(t, item.ID().Validate())
			assert.Equal(t, o.ID(), item.OrderID())
		}
	})

	t.Run("should assign unique ids", func(t *testing.T) {
		a := initializedOrder(t)
		b := initializedOrder(t)

		assert.NotEqual(t, a.ID(), b.ID())
		assert.NotEqual(t, a.TrackingID(), b.TrackingID())
	})

	t.Run("should not be invoked twice", func(t *testing.T) {
		o := initializedOrder(t)
		id, trackingID := o.ID(), o.TrackingID()

		err := o.InitializeOrder()

		var stateErr *order.InvalidOrderStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, order.OperationInitialize, stateErr.Operation)
		assert.Equal(t, order.Pending, stateErr.Status)
		assert.Equal(t, id, o.ID())
		assert.Equal(t, trackingID, o.TrackingID())
	})
}

func TestOrder_ValidateOrder(t *testing.T) {
	t.Run("should accept consistent prices", func(t *testing.T) {
		o := initializedOrder(t)

		require.NoError(t, o.ValidateOrder())
	})

	t.Run("should require initialization", func(t *testing.T) {
		o := validOrder(t)

		err := o.ValidateOrder()

		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
	})

	t.Run("should reject zero total", func(t *testing.T) {
		o := newOrder(t, "0", newItem(t, "5.00", 1, "5.00", "5.00"))
		require.NoError(t, o.InitializeOrder())

		err := o.ValidateOrder()

		assert.ErrorIs(t, err, order.ErrPriceNotPositive)
		assert.ErrorIs(t, err, order.ErrDomainValidation)
	})

	t.Run("should reject total that differs from sum of subtotals", func(t *testing.T) {
		o := newOrder(t, "14.00",
			newItem(t, "5.00", 2, "5.00", "10.00"),
			newItem(t, "3.50", 1, "3.50", "3.50"),
		)
		require.NoError(t, o.InitializeOrder())

		err := o.ValidateOrder()

		var mismatch *order.PriceMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.ErrorIs(t, err, order.ErrDomainValidation)
		assert.Equal(t, "order total", mismatch.Subject)
		assert.Equal(t, "13.50", mismatch.Expected.String())
		assert.Equal(t, "14.00", mismatch.Actual.String())
	})

	t.Run("should reject item price different from product price", func(t *testing.T) {
		o := newOrder(t, "12.00", newItem(t, "5.00", 2, "6.00", "12.00"))
		require.NoError(t, o.InitializeOrder())

		var mismatch *order.PriceMismatchError
		require.ErrorAs(t, o.ValidateOrder(), &mismatch)
		assert.Contains(t, mismatch.Subject, "price of product")
	})

	t.Run("should reject subtotal different from price times quantity", func(t *testing.T) {
		o := newOrder(t, "9.00", newItem(t, "5.00", 2, "5.00", "9.00"))
		require.NoError(t, o.InitializeOrder())

		var mismatch *order.PriceMismatchError
		require.ErrorAs(t, o.ValidateOrder(), &mismatch)
		assert.Contains(t, mismatch.Subject, "subtotal of product")
		assert.Equal(t, "10.00", mismatch.Expected.String())
	})

	t.Run("should reject zero item price", func(t *testing.T) {
		o := newOrder(t, "1.00",
			newItem(t, "0", 1, "0", "0"),
			newItem(t, "1.00", 1, "1.00", "1.00"),
		)
		require.NoError(t, o.InitializeOrder())

		assert.ErrorIs(t, o.ValidateOrder(), order.ErrDomainValidation)
	})
}

func TestOrder_Transitions(t *testing.T) {
	t.Run("happy path pending paid approved", func(t *testing.T) {
		o := initializedOrder(t)

		require.NoError(t, o.Pay())
		assert.Equal(t, order.Paid, o.Status())
		require.NoError(t, o.Approve())
		assert.Equal(t, order.Approved, o.Status())
	})

	t.Run("pay twice fails the second time", func(t *testing.T) {
		o := initializedOrder(t)
		require.NoError(t, o.Pay())

		err := o.Pay()

		var stateErr *order.InvalidOrderStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, order.OperationPay, stateErr.Operation)
		assert.Equal(t, order.Paid, stateErr.Status)
		assert.Equal(t, order.Paid, o.Status())
	})

	t.Run("approve requires paid", func(t *testing.T) {
		o := initializedOrder(t)

		assert.ErrorIs(t, o.Approve(), order.ErrInvalidOrderState)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("compensation path paid cancelling cancelled", func(t *testing.T) {
		o := initializedOrder(t)
		require.NoError(t, o.Pay())

		require.NoError(t, o.InitCancel([]string{"insufficient stock", ""}))
		assert.Equal(t, order.Cancelling, o.Status())
		assert.Equal(t, []string{"insufficient stock"}, o.FailureMessages())

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Status())
		assert.True(t, o.HasBeenPaid())
	})

	t.Run("init cancel requires paid and leaves messages untouched on failure", func(t *testing.T) {
		o := initializedOrder(t)

		err := o.InitCancel([]string{"late"})

		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
		assert.Empty(t, o.FailureMessages())
	})

	t.Run("pending order can be cancelled directly", func(t *testing.T) {
		o := initializedOrder(t)

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Status())
		assert.False(t, o.HasBeenPaid())
	})

	t.Run("approved order cannot be cancelled", func(t *testing.T) {
		o := initializedOrder(t)
		require.NoError(t, o.Pay())
		require.NoError(t, o.Approve())

		assert.ErrorIs(t, o.Cancel(), order.ErrInvalidOrderState)
		assert.ErrorIs(t, o.InitCancel(nil), order.ErrInvalidOrderState)
	})

	t.Run("uninitialized order cannot be paid", func(t *testing.T) {
		o := validOrder(t)

		assert.ErrorIs(t, o.Pay(), order.ErrInvalidOrderState)
	})
}

func TestRestoreOrder(t *testing.T) {
	source := initializedOrder(t)
	require.NoError(t, source.Pay())

	t.Run("should restore persisted state", func(t *testing.T) {
		o, err := order.RestoreOrder(
			source.ID(), source.CustomerID(), source.RestaurantID(), source.DeliveryAddress(),
			source.Price(), source.Items(), source.TrackingID(), order.Cancelling, false,
			[]string{"insufficient stock"}, 3,
		)

		require.NoError(t, err)
		assert.True(t, o.IsEqual(source))
		assert.Equal(t, order.Cancelling, o.Status())
		assert.Equal(t, []string{"insufficient stock"}, o.FailureMessages())
		assert.Equal(t, 3, o.Version())
		assert.True(t, o.HasBeenPaid(), "CANCELLING is only reachable through PAID")
	})

	t.Run("should remember payment of a cancelled order", func(t *testing.T) {
		refunded, err := order.RestoreOrder(
			source.ID(), source.CustomerID(), source.RestaurantID(), source.DeliveryAddress(),
			source.Price(), source.Items(), source.TrackingID(), order.Cancelled, true, nil, 4,
		)
		require.NoError(t, err)
		unpaid, err := order.RestoreOrder(
			source.ID(), source.CustomerID(), source.RestaurantID(), source.DeliveryAddress(),
			source.Price(), source.Items(), source.TrackingID(), order.Cancelled, false, nil, 2,
		)
		require.NoError(t, err)

		assert.True(t, refunded.HasBeenPaid())
		assert.False(t, unpaid.HasBeenPaid())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			source.ID(), source.CustomerID(), source.RestaurantID(), source.DeliveryAddress(),
			source.Price(), source.Items(), source.TrackingID(), order.Unknown, false, nil, 1,
		)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func domainService() services.OrderDomainService {
	return services.NewOrderDomainServiceWithClock(func() time.Time { return fixedNow })
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

type catalog struct {
	customer   *customer.Customer
	restaurant *restaurant.Restaurant
	productA   restaurant.Product
	productB   restaurant.Product
}

// newCatalog returns an active restaurant selling productA at 5.00 and productB at 3.50.
func newCatalog(t *testing.T, active bool) catalog {
	t.Helper()
	c, err := customer.NewCustomer(kernel.CustomerID{UUID: kernel.NewUUID()})
	require.NoError(t, err)
	a, err := restaurant.NewProduct(kernel.ProductID{UUID: kernel.NewUUID()}, "productA", mustMoney(t, "5.00"))
	require.NoError(t, err)
	b, err := restaurant.NewProduct(kernel.ProductID{UUID: kernel.NewUUID()}, "productB", mustMoney(t, "3.50"))
	require.NoError(t, err)
	r, err := restaurant.NewRestaurant(kernel.RestaurantID{UUID: kernel.NewUUID()}, active, []restaurant.Product{a, b})
	require.NoError(t, err)
	return catalog{customer: c, restaurant: r, productA: a, productB: b}
}

// command builds the two-item order command with the given declared total.
func (c catalog) command(t *testing.T, total string) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		c.customer.ID(),
		c.restaurant.ID(),
		mustMoney(t, total),
		[]commands.CreateOrderItem{
			{ProductID: c.productA.ID(), Quantity: 2, Price: mustMoney(t, "5.00"), Subtotal: mustMoney(t, "10.00")},
			{ProductID: c.productB.ID(), Quantity: 1, Price: mustMoney(t, "3.50"), Subtotal: mustMoney(t, "3.50")},
		},
		commands.CreateOrderAddress{Street: "street_1", PostalCode: "1000AB", City: "Amsterdam"},
	)
	require.NoError(t, err)
	return cmd
}

// storedOrder returns an order as the repository would load it, in the given status.
func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	return storedOrderWithPayment(t, status, false)
}

// storedOrderWithPayment is storedOrder with an explicit payment record, for CANCELLED
// orders that were paid and refunded.
func storedOrderWithPayment(t *testing.T, status order.Status, paid bool) *order.Order {
	t.Helper()
	c := newCatalog(t, true)
	addr, err := kernel.NewStreetAddress(kernel.NewUUID(), "street_1", "1000AB", "Amsterdam")
	require.NoError(t, err)
	orderID := kernel.NewOrderID()
	item, err := order.RestoreItem(
		kernel.NewOrderItemID(), orderID, c.productA, 2, mustMoney(t, "5.00"), mustMoney(t, "10.00"))
	require.NoError(t, err)
	o, err := order.RestoreOrder(
		orderID, c.customer.ID(), c.restaurant.ID(), addr, mustMoney(t, "10.00"),
		[]*order.Item{item}, kernel.NewTrackingID(), status, paid, nil, 1,
	)
	require.NoError(t, err)
	return o
}

func paymentResponse(t *testing.T, o *order.Order, status commands.PaymentStatus, msgs ...string) commands.PaymentResponseCommand {
	t.Helper()
	cmd, err := commands.NewPaymentResponseCommand(
		kernel.NewUUID().String(), o.ID().String(), o.ID(), kernel.NewUUID().String(),
		o.CustomerID(), o.Price(), status, msgs, fixedNow,
	)
	require.NoError(t, err)
	return cmd
}

func approvalResponse(
	t *testing.T,
	o *order.Order,
	status commands.ApprovalStatus,
	msgs ...string,
) commands.RestaurantApprovalResponseCommand {
	t.Helper()
	cmd, err := commands.NewRestaurantApprovalResponseCommand(
		kernel.NewUUID().String(), o.ID().String(), o.ID(), o.RestaurantID(), status, msgs, fixedNow,
	)
	require.NoError(t, err)
	return cmd
}

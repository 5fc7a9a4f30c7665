// Package order implements the Order aggregate of the ordering saga.
//
// The package includes:
//   - Order: the aggregate root with its price invariants and lifecycle transitions
//   - Item: an order line with a product snapshot, quantity, unit price and subtotal
//   - Status: the lifecycle state machine
//   - Event: the tagged domain event (Created, Paid, Cancelled) carrying an order Snapshot
//
// Lifecycle:
//
//	PENDING ──> PAID ──> APPROVED
//	   │          │
//	   │          └──> CANCELLING ──> CANCELLED
//	   └─────────────────────────────────^
//
// An order is built unpersisted by NewOrder, receives its identity in InitializeOrder,
// and from then on is only changed through the transition methods. Orders loaded from
// storage are rebuilt with RestoreOrder.
package order

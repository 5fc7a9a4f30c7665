package commands

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrPaymentResponseCommandIsNotConstructed = errors.New(
	"PaymentResponseCommand must be created via NewPaymentResponseCommand constructor",
)

// PaymentStatus is the outcome reported by the payment service.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentStatusCompleted
	PaymentStatusCancelled
	PaymentStatusFailed
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusCompleted:
		return "COMPLETED"
	case PaymentStatusCancelled:
		return "CANCELLED"
	case PaymentStatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ParsePaymentStatus accepts COMPLETED, CANCELLED and FAILED.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for _, status := range []PaymentStatus{PaymentStatusCompleted, PaymentStatusCancelled, PaymentStatusFailed} {
		if status.String() == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus", fmt.Errorf("%q is not a valid payment status", s))
}

// PaymentResponseCommand carries a payment service response for one order.
type PaymentResponseCommand struct { //nolint:recvcheck //using for validation
	id              string
	sagaID          string
	orderID         kernel.OrderID
	paymentID       string
	customerID      kernel.CustomerID
	price           kernel.Money
	status          PaymentStatus
	failureMessages []string
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewPaymentResponseCommand requires the order id and a known payment status. The remaining
// fields are kept for logging.
func NewPaymentResponseCommand(
	id, sagaID string,
	orderID kernel.OrderID,
	paymentID string,
	customerID kernel.CustomerID,
	price kernel.Money,
	status PaymentStatus,
	failureMessages []string,
	createdAt time.Time,
) (PaymentResponseCommand, error) {
	cmd := PaymentResponseCommand{
		id:              id,
		sagaID:          sagaID,
		paymentID:       paymentID,
		customerID:      customerID,
		price:           price,
		failureMessages: slices.Clone(failureMessages),
		createdAt:       createdAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return PaymentResponseCommand{}, err
	}

	return cmd, nil
}

func (c PaymentResponseCommand) Validate() error {
	return c.guard.Validate(ErrPaymentResponseCommandIsNotConstructed)
}

func (c PaymentResponseCommand) ID() string                    { return c.id }
func (c PaymentResponseCommand) SagaID() string                { return c.sagaID }
func (c PaymentResponseCommand) OrderID() kernel.OrderID       { return c.orderID }
func (c PaymentResponseCommand) PaymentID() string             { return c.paymentID }
func (c PaymentResponseCommand) CustomerID() kernel.CustomerID { return c.customerID }
func (c PaymentResponseCommand) Price() kernel.Money           { return c.price }
func (c PaymentResponseCommand) Status() PaymentStatus         { return c.status }
func (c PaymentResponseCommand) CreatedAt() time.Time          { return c.createdAt }

func (c PaymentResponseCommand) FailureMessages() []string {
	return slices.Clone(c.failureMessages)
}

func (c *PaymentResponseCommand) setOrderID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = id
	return nil
}

func (c *PaymentResponseCommand) setStatus(status PaymentStatus) error {
	if status == PaymentStatusUnknown || status > PaymentStatusFailed {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", status))
	}
	c.status = status
	return nil
}

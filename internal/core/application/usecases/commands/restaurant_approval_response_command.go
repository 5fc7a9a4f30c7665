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

var ErrRestaurantApprovalResponseCommandIsNotConstructed = errors.New(
	"RestaurantApprovalResponseCommand must be created via NewRestaurantApprovalResponseCommand constructor",
)

// ApprovalStatus is the decision reported by the restaurant.
type ApprovalStatus int

const (
	ApprovalStatusUnknown ApprovalStatus = iota
	ApprovalStatusApproved
	ApprovalStatusRejected
)

func (s ApprovalStatus) String() string {
	switch s {
	case ApprovalStatusApproved:
		return "APPROVED"
	case ApprovalStatusRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// ParseApprovalStatus accepts APPROVED and REJECTED.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch s {
	case ApprovalStatusApproved.String():
		return ApprovalStatusApproved, nil
	case ApprovalStatusRejected.String():
		return ApprovalStatusRejected, nil
	default:
		return ApprovalStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"orderApprovalStatus", fmt.Errorf("%q is not a valid approval status", s))
	}
}

// RestaurantApprovalResponseCommand carries a restaurant's decision on one order.
type RestaurantApprovalResponseCommand struct { //nolint:recvcheck //using for validation
	id              string
	sagaID          string
	orderID         kernel.OrderID
	restaurantID    kernel.RestaurantID
	status          ApprovalStatus
	failureMessages []string
	createdAt       time.Time

	guard guard.ConstructorGuard
}

func NewRestaurantApprovalResponseCommand(
	id, sagaID string,
	orderID kernel.OrderID,
	restaurantID kernel.RestaurantID,
	status ApprovalStatus,
	failureMessages []string,
	createdAt time.Time,
) (RestaurantApprovalResponseCommand, error) {
	cmd := RestaurantApprovalResponseCommand{
		id:              id,
		sagaID:          sagaID,
		restaurantID:    restaurantID,
		failureMessages: slices.Clone(failureMessages),
		createdAt:       createdAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return RestaurantApprovalResponseCommand{}, err
	}

	return cmd, nil
}

func (c RestaurantApprovalResponseCommand) Validate() error {
	return c.guard.Validate(ErrRestaurantApprovalResponseCommandIsNotConstructed)
}

func (c RestaurantApprovalResponseCommand) ID() string                        { return c.id }
func (c RestaurantApprovalResponseCommand) SagaID() string                    { return c.sagaID }
func (c RestaurantApprovalResponseCommand) OrderID() kernel.OrderID           { return c.orderID }
func (c RestaurantApprovalResponseCommand) RestaurantID() kernel.RestaurantID { return c.restaurantID }
func (c RestaurantApprovalResponseCommand) Status() ApprovalStatus            { return c.status }
func (c RestaurantApprovalResponseCommand) CreatedAt() time.Time              { return c.createdAt }

func (c RestaurantApprovalResponseCommand) FailureMessages() []string {
	return slices.Clone(c.failureMessages)
}

func (c *RestaurantApprovalResponseCommand) setOrderID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = id
	return nil
}

func (c *RestaurantApprovalResponseCommand) setStatus(status ApprovalStatus) error {
	if status != ApprovalStatusApproved && status != ApprovalStatusRejected {
		return errs.NewValueIsInvalidErrorWithCause("orderApprovalStatus", fmt.Errorf("%d is not a valid approval status", status))
	}
	c.status = status
	return nil
}

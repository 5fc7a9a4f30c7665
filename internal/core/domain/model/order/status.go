package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Unknown is the state of an order that has
// not been initialized yet.
type Status int

const (
	Unknown Status = iota
	Pending
	Paid
	Approved
	Cancelling
	Cancelled
)

// Operation names used in InvalidOrderStateError.
const (
	OperationInitialize = "initialize"
	OperationValidate   = "validate"
	OperationPay        = "pay"
	OperationApprove    = "approve"
	OperationInitCancel = "init cancel"
	OperationCancel     = "cancel"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Paid:       "PAID",
		Approved:   "APPROVED",
		Cancelling: "CANCELLING",
		Cancelled:  "CANCELLED",
	}
}

// ParseStatus converts the persisted/wire form back to a Status. UNKNOWN is rejected.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate accepts every status except Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Pay transitions PENDING -> PAID.
func (s Status) Pay() (Status, error) {
	if s != Pending {
		return s, NewInvalidOrderStateError(OperationPay, s)
	}
	return Paid, nil
}

// Approve transitions PAID -> APPROVED.
func (s Status) Approve() (Status, error) {
	if s != Paid {
		return s, NewInvalidOrderStateError(OperationApprove, s)
	}
	return Approved, nil
}

// InitCancel transitions PAID -> CANCELLING.
func (s Status) InitCancel() (Status, error) {
	if s != Paid {
		return s, NewInvalidOrderStateError(OperationInitCancel, s)
	}
	return Cancelling, nil
}

// Cancel transitions CANCELLING or PENDING -> CANCELLED.
func (s Status) Cancel() (Status, error) {
	if s != Cancelling && s != Pending {
		return s, NewInvalidOrderStateError(OperationCancel, s)
	}
	return Cancelled, nil
}

// The Has* predicates report whether a transition has already been applied to an order in
// status s. Saga responders use them to recognise redelivered messages.

// HasBeenPaid is true for PAID and for the states only reachable through PAID.
func (s Status) HasBeenPaid() bool {
	return s == Paid || s == Approved || s == Cancelling
}

func (s Status) HasBeenApproved() bool {
	return s == Approved
}

func (s Status) HasCancelBeenInitiated() bool {
	return s == Cancelling || s == Cancelled
}

func (s Status) HasBeenCancelled() bool {
	return s == Cancelled
}

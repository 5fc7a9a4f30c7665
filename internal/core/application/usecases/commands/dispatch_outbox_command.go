package commands

import (
	"errors"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const maxOutboxBatchSize = 1000

var ErrDispatchOutboxCommandIsNotConstructed = errors.New(
	"DispatchOutboxCommand must be created via NewDispatchOutboxCommand constructor",
)

// DispatchOutboxCommand asks for one batch of pending outbox messages to be published.
type DispatchOutboxCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchOutboxCommand(batchSize int) (DispatchOutboxCommand, error) {
	if batchSize < 1 || batchSize > maxOutboxBatchSize {
		return DispatchOutboxCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxOutboxBatchSize)
	}
	return DispatchOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchOutboxCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOutboxCommandIsNotConstructed)
}

func (c DispatchOutboxCommand) BatchSize() int {
	return c.batchSize
}

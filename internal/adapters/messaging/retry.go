package messaging

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// IsRetryable reports whether redelivering the message that caused err may succeed.
// Concurrent modification, publish and infrastructure failures are retryable. Malformed
// messages and domain outcomes (validation, invalid state, not found) are not.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrMalformedMessage),
		errors.Is(err, order.ErrDomainValidation),
		errors.Is(err, order.ErrInvalidOrderState),
		errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return false
	default:
		return true
	}
}

// RetryPolicy configures the exponential backoff between attempts of one message.
// A zero MaxElapsedTime retries until the context is cancelled.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// Processor runs a HandlerFunc with retries. Process returns nil when the message is done,
// either handled or dropped as non-retryable, and an error when the caller must not
// acknowledge it.
type Processor struct {
	policy RetryPolicy
	logger *zap.Logger
}

func NewProcessor(policy RetryPolicy, logger *zap.Logger) *Processor {
	return &Processor{policy: policy, logger: logger.With(zap.String("component", "message_processor"))}
}

func (p *Processor) Process(ctx context.Context, source string, payload []byte, handle HandlerFunc) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.policy.InitialInterval
	b.MaxInterval = p.policy.MaxInterval
	b.MaxElapsedTime = p.policy.MaxElapsedTime

	operation := func() error {
		err := handle(ctx, payload)
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		p.logger.Warn("message handling failed, retrying",
			zap.String("source", source),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
	switch {
	case err == nil:
		return nil
	case !IsRetryable(err):
		p.logger.Error("message dropped",
			zap.String("source", source),
			zap.ByteString("payload", payload),
			zap.Error(err),
		)
		return nil
	default:
		return err
	}
}

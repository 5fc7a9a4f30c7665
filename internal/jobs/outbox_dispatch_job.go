package jobs

import (
	"context"
	"errors"
	"sync"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const everySecond = "* * * * * *"

type OutboxDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchOutboxCommand) (int, error)
}

// OutboxDispatchJob publishes pending outbox messages. Runs are serialized: wake-ups that
// arrive while a run is in progress collapse into a single follow-up run.
type OutboxDispatchJob struct {
	handler OutboxDispatcher
	cmd     commands.DispatchOutboxCommand
	cron    *cron.Cron
	logger  *zap.Logger

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
}

func NewOutboxDispatchJob(handler OutboxDispatcher, batchSize int, logger *zap.Logger) (*OutboxDispatchJob, error) {
	cmd, err := commands.NewDispatchOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}
	return &OutboxDispatchJob{
		handler: handler,
		cmd:     cmd,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With(zap.String("component", "outbox_dispatch_job")),
		wake:    make(chan struct{}, 1),
	}, nil
}

// Notify requests a run without waiting for the next tick. It never blocks, so it is safe
// to call from an after-commit hook.
func (j *OutboxDispatchJob) Notify() {
	select {
	case j.wake <- struct{}{}:
	default:
	}
}

// Start begins dispatching every second and on Notify until ctx is done or Stop is called.
func (j *OutboxDispatchJob) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := j.cron.AddFunc(everySecond, j.Notify); err != nil {
		return err
	}

	ctx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})
	go j.run(ctx)

	j.cron.Start()
	j.logger.Info("outbox dispatch job started (running every second)")
	return nil
}

// Stop stops the schedule and waits for the current run to finish.
func (j *OutboxDispatchJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	<-j.cron.Stop().Done()
	if j.cancel != nil {
		j.cancel()
		<-j.done
		j.cancel = nil
	}
	j.logger.Info("outbox dispatch job stopped")
}

func (j *OutboxDispatchJob) run(ctx context.Context) {
	defer close(j.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-j.wake:
			j.dispatch(ctx)
		}
	}
}

// dispatch publishes batches until the outbox has no more than a partial batch left.
func (j *OutboxDispatchJob) dispatch(ctx context.Context) {
	for ctx.Err() == nil {
		published, err := j.handler.Handle(ctx, j.cmd)
		if err != nil {
			j.logError(ctx, published, err)
			return
		}
		if published < j.cmd.BatchSize() {
			return
		}
	}
}

func (j *OutboxDispatchJob) logError(ctx context.Context, published int, err error) {
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return
	}
	var publishErr *ports.PublishError
	if errors.As(err, &publishErr) {
		j.logger.Warn("outbox messages left pending", zap.Int("published", published), zap.Error(err))
		return
	}
	j.logger.Error("outbox dispatch job failed", zap.Error(err))
}

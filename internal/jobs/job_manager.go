package jobs

import (
	"context"
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxDispatchJob *OutboxDispatchJob
}

func NewJobManager(outboxDispatchJob *OutboxDispatchJob) *JobManager {
	return &JobManager{
		outboxDispatchJob: outboxDispatchJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.outboxDispatchJob.Start(ctx); err != nil {
		return fmt.Errorf("failed to start outbox dispatch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running work to finish.
func (jm *JobManager) StopAll() {
	jm.outboxDispatchJob.Stop()
}

// Package jobs provides background tasks of the ordering service.
//
// Jobs use github.com/robfig/cron/v3 for their schedule.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - publishes committed outbox messages to the broker. It runs every
// second and immediately after any unit of work that staged events commits.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	dispatchJob, err := jobs.NewOutboxDispatchJob(dispatchHandler, batchSize, logger)
//	if err != nil {
//		return err
//	}
//	jobManager := jobs.NewJobManager(dispatchJob)
//
//	if err := jobManager.StartAll(ctx); err != nil {
//		return fmt.Errorf("start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed publishes are logged and retried on the next run; the messages stay pending in the
// outbox until they are published.
package jobs

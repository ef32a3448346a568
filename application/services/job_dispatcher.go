package services

import (
	"context"
	"errors"
	"time"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/inbound"
	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
)

type jobDispatcher struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	store       outbound.JobStorePort
	runner      inbound.PipelineRunnerPort
	workerCount int
	jobTimeout  time.Duration
}

// NewJobDispatcher builds the bounded consumer of the pending queue. The
// worker count is the admission-control cap on concurrent pipeline runs.
func NewJobDispatcher(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	store outbound.JobStorePort, runner inbound.PipelineRunnerPort,
	workerCount int, jobTimeout time.Duration) inbound.JobDispatcherPort {
	if workerCount < 1 {
		workerCount = 1
	}
	return &jobDispatcher{
		logger:      logger,
		workerPool:  workerPool,
		store:       store,
		runner:      runner,
		workerCount: workerCount,
		jobTimeout:  jobTimeout,
	}
}

func (d *jobDispatcher) Start(ctx context.Context) error {
	for i := 0; i < d.workerCount; i++ {
		worker := i + 1
		if err := d.workerPool.Submit(func() {
			d.consume(ctx, worker)
		}); err != nil {
			return err
		}
	}
	d.logger.InfoWithFields("job dispatcher started", map[string]interface{}{
		"workers": d.workerCount,
	})
	return nil
}

func (d *jobDispatcher) consume(ctx context.Context, worker int) {
	for {
		jobID, err := d.store.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			d.logger.ErrorWithFields(err, "failed to dequeue pending job", map[string]interface{}{
				"worker": worker,
			})
			continue
		}

		d.runOne(ctx, worker, jobID)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// runOne bounds a single pipeline run with the job-wide deadline. Runner
// errors are already recorded on the job itself, so they are only logged.
func (d *jobDispatcher) runOne(ctx context.Context, worker int, jobID string) {
	runCtx := ctx
	if d.jobTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.jobTimeout)
		defer cancel()
	}

	d.logger.InfoWithFields("dispatching job", map[string]interface{}{
		"worker": worker,
		"job_id": jobID,
	})

	if err := d.runner.Run(runCtx, jobID); err != nil {
		d.logger.ErrorWithFields(err, "pipeline run finished with error", map[string]interface{}{
			"worker": worker,
			"job_id": jobID,
		})
	}
}

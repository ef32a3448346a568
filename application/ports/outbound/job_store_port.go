package outbound

import (
	"context"

	"github.com/brandonlacoste9-tech/Koloni/domain"
)

// JobStorePort is the single source of truth for job state: one record per
// job plus the pending dispatch queue.
type JobStorePort interface {
	// Create persists a new job record. Returns domain.ErrJobExists when
	// the id is already taken.
	Create(ctx context.Context, job domain.Job) error

	// Get returns a snapshot of the job, or domain.ErrJobNotFound.
	Get(ctx context.Context, id string) (domain.Job, error)

	// Update atomically merges the partial update into the job record via
	// domain.Job.Apply, so backward moves are rejected centrally.
	Update(ctx context.Context, id string, update domain.JobUpdate) error

	// Enqueue appends the job id to the pending queue.
	Enqueue(ctx context.Context, id string) error

	// Dequeue blocks until a pending job id is available or the context
	// is cancelled.
	Dequeue(ctx context.Context) (string, error)

	// QueueLength reports the number of pending jobs.
	QueueLength(ctx context.Context) (int64, error)
}

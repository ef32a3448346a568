package inbound

import (
	"context"

	"github.com/brandonlacoste9-tech/Koloni/domain"
)

// JobStatusPort is the read-only projection over the job store. It enforces
// ownership before revealing any job state and never interacts with the
// running pipeline.
type JobStatusPort interface {
	GetStatus(ctx context.Context, jobID, requesterID string) (domain.JobStatusView, error)
}

package inbound

import "context"

// PipelineRunnerPort executes the full stage sequence for one job. Exactly
// one runner invocation per job; all job mutation happens inside it.
type PipelineRunnerPort interface {
	Run(ctx context.Context, jobID string) error
}

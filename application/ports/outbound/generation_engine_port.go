package outbound

import (
	"context"

	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type SubmitGenerationParams struct {
	Workflow *domain.WorkflowPlan
	Prompt   string
}

// GenerationEnginePort drives the video synthesis engine: submit a workflow,
// then poll the returned engine job id until it reaches a terminal state.
type GenerationEnginePort interface {
	Submit(ctx context.Context, params SubmitGenerationParams) (string, error)
	Status(ctx context.Context, engineJobID string) (domain.EngineStatus, error)
}

package outbound

import (
	"context"

	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type PlanWorkflowParams struct {
	Scenes              []domain.Scene
	VideoType           string
	EditingRequirements []string
}

type WorkflowPlannerPort interface {
	PlanWorkflow(ctx context.Context, params PlanWorkflowParams) (*domain.WorkflowPlan, error)
}

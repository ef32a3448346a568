package adapters

import (
	"context"
	"fmt"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/config"
	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type planWorkflowRequest struct {
	Scenes              []domain.Scene `json:"scenes"`
	VideoType           string         `json:"video_type"`
	EditingRequirements []string       `json:"editing_requirements"`
}

type planWorkflowResponse struct {
	VideoType string                `json:"video_type"`
	Steps     []domain.WorkflowStep `json:"steps"`
}

type workflowPlanner struct {
	fetcher ContentFetcher
	cfg     *config.WorkflowPlannerConfig
	logger  outbound.LoggerPort
}

func NewWorkflowPlanner(fetcher ContentFetcher, cfg *config.WorkflowPlannerConfig, logger outbound.LoggerPort) outbound.WorkflowPlannerPort {
	return &workflowPlanner{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
	}
}

func (p *workflowPlanner) PlanWorkflow(ctx context.Context, params outbound.PlanWorkflowParams) (*domain.WorkflowPlan, error) {
	reqBody := planWorkflowRequest{
		Scenes:              params.Scenes,
		VideoType:           params.VideoType,
		EditingRequirements: params.EditingRequirements,
	}
	if reqBody.EditingRequirements == nil {
		reqBody.EditingRequirements = []string{}
	}

	var res planWorkflowResponse
	if err := p.fetcher.PostJSON(ctx, p.cfg.ApiUrl+"/api/plan/workflow", reqBody, &res); err != nil {
		p.logger.ErrorWithFields(err, "workflow planner request failed", map[string]interface{}{
			"url": p.cfg.ApiUrl,
		})
		return nil, fmt.Errorf("workflow planner: %w", err)
	}

	videoType := res.VideoType
	if videoType == "" {
		videoType = params.VideoType
	}
	return &domain.WorkflowPlan{
		VideoType: videoType,
		Steps:     res.Steps,
	}, nil
}

package adapters

import (
	"context"
	"fmt"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/config"
	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type submitWorkflowRequest struct {
	Workflow  *domain.WorkflowPlan `json:"workflow"`
	Prompt    string               `json:"prompt,omitempty"`
	ExtraData map[string]any       `json:"extra_data"`
}

type submitWorkflowResponse struct {
	PromptID string `json:"prompt_id"`
}

type workflowStatusResponse struct {
	Status       string   `json:"status"`
	Progress     int      `json:"progress"`
	OutputVideos []string `json:"output_videos"`
	Error        string   `json:"error"`
}

type generationEngine struct {
	fetcher ContentFetcher
	cfg     *config.GenerationEngineConfig
	logger  outbound.LoggerPort
}

func NewGenerationEngine(fetcher ContentFetcher, cfg *config.GenerationEngineConfig, logger outbound.LoggerPort) outbound.GenerationEnginePort {
	return &generationEngine{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
	}
}

func (e *generationEngine) Submit(ctx context.Context, params outbound.SubmitGenerationParams) (string, error) {
	reqBody := submitWorkflowRequest{
		Workflow:  params.Workflow,
		Prompt:    params.Prompt,
		ExtraData: map[string]any{},
	}

	var res submitWorkflowResponse
	if err := e.fetcher.PostJSON(ctx, e.cfg.ApiUrl+"/api/workflow/submit", reqBody, &res); err != nil {
		e.logger.ErrorWithFields(err, "generation engine submit failed", map[string]interface{}{
			"url": e.cfg.ApiUrl,
		})
		return "", fmt.Errorf("generation engine submit: %w", err)
	}
	if res.PromptID == "" {
		return "", fmt.Errorf("generation engine submit: empty prompt id in response")
	}
	return res.PromptID, nil
}

func (e *generationEngine) Status(ctx context.Context, engineJobID string) (domain.EngineStatus, error) {
	var res workflowStatusResponse
	url := e.cfg.ApiUrl + "/api/workflow/status/" + engineJobID
	if err := e.fetcher.GetJSON(ctx, url, &res); err != nil {
		e.logger.ErrorWithFields(err, "generation engine status failed", map[string]interface{}{
			"engine_job_id": engineJobID,
		})
		return domain.EngineStatus{}, fmt.Errorf("generation engine status: %w", err)
	}

	return domain.EngineStatus{
		State:        domain.EngineState(res.Status),
		Progress:     res.Progress,
		OutputVideos: res.OutputVideos,
		Error:        res.Error,
	}, nil
}

package adapters

import (
	"context"
	"fmt"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/config"
	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type planScenesRequest struct {
	Script           string            `json:"script"`
	DurationSeconds  int               `json:"duration_seconds"`
	StylePreferences map[string]string `json:"style_preferences"`
	BrandGuidelines  map[string]string `json:"brand_guidelines"`
}

type planScenesResponse struct {
	Scenes []domain.Scene `json:"scenes"`
}

type scenePlanner struct {
	fetcher ContentFetcher
	cfg     *config.ScenePlannerConfig
	logger  outbound.LoggerPort
}

func NewScenePlanner(fetcher ContentFetcher, cfg *config.ScenePlannerConfig, logger outbound.LoggerPort) outbound.ScenePlannerPort {
	return &scenePlanner{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
	}
}

func (p *scenePlanner) PlanScenes(ctx context.Context, params outbound.PlanScenesParams) ([]domain.Scene, error) {
	reqBody := planScenesRequest{
		Script:           params.Script,
		DurationSeconds:  params.DurationSeconds,
		StylePreferences: params.StylePreferences,
		BrandGuidelines:  map[string]string{},
	}
	if params.BrandGuidelinesID != "" {
		reqBody.BrandGuidelines["guidelines_id"] = params.BrandGuidelinesID
	}

	var res planScenesResponse
	if err := p.fetcher.PostJSON(ctx, p.cfg.ApiUrl+"/api/plan/scenes", reqBody, &res); err != nil {
		p.logger.ErrorWithFields(err, "scene planner request failed", map[string]interface{}{
			"url": p.cfg.ApiUrl,
		})
		return nil, fmt.Errorf("scene planner: %w", err)
	}
	return res.Scenes, nil
}

package outbound

import (
	"context"

	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type PlanScenesParams struct {
	Script            string
	DurationSeconds   int
	StylePreferences  map[string]string
	BrandGuidelinesID string
}

type ScenePlannerPort interface {
	PlanScenes(ctx context.Context, params PlanScenesParams) ([]domain.Scene, error)
}

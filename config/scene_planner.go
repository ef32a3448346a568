package config

import (
	"fmt"
	"os"
)

type ScenePlannerConfig struct {
	ApiUrl string
}

func GetScenePlannerConfig() (*ScenePlannerConfig, error) {
	apiUrl := os.Getenv("SCENE_PLANNER_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("SCENE_PLANNER_API_URL must be set")
	}

	return &ScenePlannerConfig{
		ApiUrl: apiUrl,
	}, nil
}

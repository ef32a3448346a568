package config

import (
	"fmt"
	"os"
)

type WorkflowPlannerConfig struct {
	ApiUrl    string
	VideoType string
}

func GetWorkflowPlannerConfig() (*WorkflowPlannerConfig, error) {
	apiUrl := os.Getenv("WORKFLOW_PLANNER_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("WORKFLOW_PLANNER_API_URL must be set")
	}

	videoType := os.Getenv("WORKFLOW_VIDEO_TYPE")
	if videoType == "" {
		videoType = "hunyuan"
	}

	return &WorkflowPlannerConfig{
		ApiUrl:    apiUrl,
		VideoType: videoType,
	}, nil
}

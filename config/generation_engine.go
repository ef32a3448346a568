package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type GenerationEngineConfig struct {
	ApiUrl          string
	PollInterval    time.Duration
	MaxPollAttempts int
}

func GetGenerationEngineConfig() (*GenerationEngineConfig, error) {
	apiUrl := os.Getenv("GENERATION_ENGINE_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("GENERATION_ENGINE_API_URL must be set")
	}

	pollInterval := 5 * time.Second
	if raw := os.Getenv("GENERATION_POLL_INTERVAL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse GENERATION_POLL_INTERVAL_SECONDS: %w", err)
		}
		pollInterval = time.Duration(seconds) * time.Second
	}

	maxPollAttempts := 120
	if raw := os.Getenv("GENERATION_MAX_POLL_ATTEMPTS"); raw != "" {
		attempts, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse GENERATION_MAX_POLL_ATTEMPTS: %w", err)
		}
		maxPollAttempts = attempts
	}

	return &GenerationEngineConfig{
		ApiUrl:          apiUrl,
		PollInterval:    pollInterval,
		MaxPollAttempts: maxPollAttempts,
	}, nil
}

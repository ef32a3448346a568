package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Port        string
	WorkerCount int
	JobTimeout  time.Duration
}

func GetServerConfig() (*ServerConfig, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	workerCount := 8
	if raw := os.Getenv("PIPELINE_WORKER_COUNT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PIPELINE_WORKER_COUNT: %w", err)
		}
		if parsed < 1 {
			return nil, fmt.Errorf("PIPELINE_WORKER_COUNT must be at least 1")
		}
		workerCount = parsed
	}

	jobTimeout := 15 * time.Minute
	if raw := os.Getenv("JOB_TIMEOUT_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JOB_TIMEOUT_MINUTES: %w", err)
		}
		jobTimeout = time.Duration(minutes) * time.Minute
	}

	return &ServerConfig{
		Port:        port,
		WorkerCount: workerCount,
		JobTimeout:  jobTimeout,
	}, nil
}

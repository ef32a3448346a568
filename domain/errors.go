package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationRequired is returned when no caller identity could
	// be resolved for a request.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrJobNotFound is returned for an unknown job id.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobExists is returned by Create when the job id is already taken.
	ErrJobExists = errors.New("job already exists")

	// ErrAccessDenied is returned when the caller is not the job's owner.
	ErrAccessDenied = errors.New("access denied")

	// ErrJobImmutable is returned when mutating a job in a terminal state.
	ErrJobImmutable = errors.New("job is in a terminal state")

	// ErrStateRegression is returned when an update would move status,
	// stage or progress backward.
	ErrStateRegression = errors.New("job state regression")

	// ErrJobNotReady is returned when exporting a job that has not
	// completed or has no video asset.
	ErrJobNotReady = errors.New("job is not ready for export")
)

// UpstreamServiceError wraps a failed collaborator call with the pipeline
// stage it happened in.
type UpstreamServiceError struct {
	Stage JobStage
	Err   error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s: upstream service error: %v", e.Stage, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error { return e.Err }

// GenerationTimeoutError is returned when the generation engine never
// reached a terminal state within the polling ceiling.
type GenerationTimeoutError struct {
	EngineJobID string
	Attempts    int
}

func (e *GenerationTimeoutError) Error() string {
	return fmt.Sprintf("generation timed out after %d attempts (engine job %s)", e.Attempts, e.EngineJobID)
}

package inbound

import (
	"context"

	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type SubmitJobParams struct {
	OwnerID             string
	Prompt              string
	CampaignID          string
	DurationSeconds     int
	Style               string
	Voice               domain.VoiceSettings
	EditingInstructions []string
	BrandGuidelinesID   string
}

type SubmitJobResult struct {
	JobID         string
	Status        domain.JobStatus
	QueuePosition int64
}

// JobSubmitterPort creates a job record and enqueues it for the dispatcher.
// The submitting request never waits on pipeline execution.
type JobSubmitterPort interface {
	Submit(ctx context.Context, params SubmitJobParams) (SubmitJobResult, error)
}

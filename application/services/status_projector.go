package services

import (
	"context"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/inbound"
	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type statusProjector struct {
	logger outbound.LoggerPort
	store  outbound.JobStorePort
}

func NewStatusProjector(logger outbound.LoggerPort, store outbound.JobStorePort) inbound.JobStatusPort {
	return &statusProjector{
		logger: logger,
		store:  store,
	}
}

// GetStatus maps the raw job record into the client-facing view. Ownership
// is checked before any state is revealed.
func (p *statusProjector) GetStatus(ctx context.Context, jobID, requesterID string) (domain.JobStatusView, error) {
	if requesterID == "" {
		return domain.JobStatusView{}, domain.ErrAuthenticationRequired
	}

	job, err := p.store.Get(ctx, jobID)
	if err != nil {
		return domain.JobStatusView{}, err
	}

	if job.OwnerID != requesterID {
		return domain.JobStatusView{}, domain.ErrAccessDenied
	}

	return domain.JobStatusView{
		JobID:        job.ID,
		Status:       job.Status,
		Progress:     job.Progress,
		CurrentStage: job.Stage,
		Assets: domain.JobAssets{
			FinalVideo:  job.VideoURL,
			AudioTracks: job.AudioURLs,
		},
		Warnings: job.Warnings,
		Error:    job.Error,
	}, nil
}

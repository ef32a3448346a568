package services

import (
	"context"
	"time"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/inbound"
	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/domain"
	"github.com/google/uuid"
)

type jobSubmitter struct {
	logger outbound.LoggerPort
	store  outbound.JobStorePort
}

func NewJobSubmitter(logger outbound.LoggerPort, store outbound.JobStorePort) inbound.JobSubmitterPort {
	return &jobSubmitter{
		logger: logger,
		store:  store,
	}
}

// Submit creates the pending job record and enqueues its id for the
// dispatcher. The queue position is informational: the number of jobs
// waiting right after this one was enqueued.
func (s *jobSubmitter) Submit(ctx context.Context, params inbound.SubmitJobParams) (inbound.SubmitJobResult, error) {
	if params.OwnerID == "" {
		return inbound.SubmitJobResult{}, domain.ErrAuthenticationRequired
	}

	job := domain.Job{
		ID:                  uuid.NewString(),
		OwnerID:             params.OwnerID,
		Prompt:              params.Prompt,
		CampaignID:          params.CampaignID,
		DurationSeconds:     params.DurationSeconds,
		Style:               params.Style,
		Voice:               params.Voice,
		EditingInstructions: params.EditingInstructions,
		BrandGuidelinesID:   params.BrandGuidelinesID,
		Status:              domain.JobPending,
		Progress:            0,
		CreatedAt:           time.Now().UTC(),
	}

	if err := s.store.Create(ctx, job); err != nil {
		s.logger.ErrorWithFields(err, "failed to create job record", map[string]interface{}{
			"job_id": job.ID,
		})
		return inbound.SubmitJobResult{}, err
	}

	if err := s.store.Enqueue(ctx, job.ID); err != nil {
		s.logger.ErrorWithFields(err, "failed to enqueue job", map[string]interface{}{
			"job_id": job.ID,
		})
		return inbound.SubmitJobResult{}, err
	}

	position, err := s.store.QueueLength(ctx)
	if err != nil {
		// Position is cosmetic, a failed length read never fails the submit.
		s.logger.WarnWithFields("failed to read queue length", map[string]interface{}{
			"job_id": job.ID,
		})
		position = 0
	}

	s.logger.InfoWithFields("job submitted", map[string]interface{}{
		"job_id":   job.ID,
		"owner_id": job.OwnerID,
	})

	return inbound.SubmitJobResult{
		JobID:         job.ID,
		Status:        domain.JobPending,
		QueuePosition: position,
	}, nil
}

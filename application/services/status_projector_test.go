package services

import (
	"context"
	"testing"
	"time"

	"github.com/brandonlacoste9-tech/Koloni/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusProjector_OwnerSeesProjection(t *testing.T) {
	store := newMemoryJobStore()
	require.NoError(t, store.Create(context.Background(), domain.Job{
		ID:        "job-1",
		OwnerID:   "user-1",
		Status:    domain.JobProcessing,
		Stage:     domain.StageGeneration,
		Progress:  45,
		VideoURL:  "",
		AudioURLs: []string{"a.mp3"},
		CreatedAt: time.Now().UTC(),
	}))

	projector := NewStatusProjector(noopLogger{}, store)

	view, err := projector.GetStatus(context.Background(), "job-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", view.JobID)
	assert.Equal(t, domain.JobProcessing, view.Status)
	assert.Equal(t, domain.StageGeneration, view.CurrentStage)
	assert.Equal(t, 45, view.Progress)
	assert.Equal(t, []string{"a.mp3"}, view.Assets.AudioTracks)
	assert.Empty(t, view.Error)
}

func TestStatusProjector_UnknownJobIsNotFound(t *testing.T) {
	projector := NewStatusProjector(noopLogger{}, newMemoryJobStore())

	_, err := projector.GetStatus(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestStatusProjector_NonOwnerIsDenied(t *testing.T) {
	store := newMemoryJobStore()
	require.NoError(t, store.Create(context.Background(), domain.Job{
		ID:      "job-1",
		OwnerID: "user-1",
		Status:  domain.JobCompleted,
	}))

	projector := NewStatusProjector(noopLogger{}, store)

	// Denied regardless of job status, and before any state is revealed.
	_, err := projector.GetStatus(context.Background(), "job-1", "intruder")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestStatusProjector_MissingIdentityIsRejected(t *testing.T) {
	store := newMemoryJobStore()
	require.NoError(t, store.Create(context.Background(), domain.Job{
		ID:      "job-1",
		OwnerID: "user-1",
	}))

	projector := NewStatusProjector(noopLogger{}, store)

	_, err := projector.GetStatus(context.Background(), "job-1", "")
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)
}

func TestStatusProjector_FailedJobKeepsErrorVisible(t *testing.T) {
	store := newMemoryJobStore()
	require.NoError(t, store.Create(context.Background(), domain.Job{
		ID:         "job-1",
		OwnerID:    "user-1",
		Status:     domain.JobFailed,
		Stage:      domain.StageWorkflowPlanning,
		Progress:   20,
		Error:      "workflow planning failed: no workflow for video type",
		ErrorStage: domain.StageWorkflowPlanning,
	}))

	projector := NewStatusProjector(noopLogger{}, store)

	view, err := projector.GetStatus(context.Background(), "job-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobFailed, view.Status)
	assert.Equal(t, 20, view.Progress)
	assert.Contains(t, view.Error, "workflow planning failed")
}

package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandonlacoste9-tech/Koloni/domain"
)

func TestJobFieldsRoundTrip(t *testing.T) {
	created := time.Date(2025, 5, 20, 9, 30, 0, 123456789, time.UTC)
	completed := created.Add(4 * time.Minute)

	job := domain.Job{
		ID:                  "job-1",
		OwnerID:             "user-1",
		Prompt:              "launch teaser for the fall collection",
		CampaignID:          "campaign-9",
		DurationSeconds:     45,
		Style:               "energetic",
		Voice:               domain.VoiceSettings{VoiceID: "nova", Language: "en", Emotion: "upbeat"},
		EditingInstructions: []string{"add captions", "fast cuts"},
		BrandGuidelinesID:   "brand-3",
		Status:              domain.JobCompleted,
		Stage:               domain.StageCompleted,
		Progress:            100,
		ScenePlan: []domain.Scene{
			{SceneNumber: 1, Description: "logo reveal", DurationSeconds: 5},
		},
		WorkflowPlan: &domain.WorkflowPlan{
			VideoType: "hunyuan",
			Steps:     []domain.WorkflowStep{{NodeID: "n1", Type: "sampler"}},
		},
		EngineJobID: "prompt-77",
		VideoURL:    "https://cdn.example.com/final.mp4",
		AudioURLs:   []string{"https://cdn.example.com/a1.mp3"},
		Warnings:    []string{"audio synthesis failed for scene 2"},
		CreatedAt:   created,
		CompletedAt: completed,
	}

	fields, err := jobToFields(job)
	require.NoError(t, err)

	raw := make(map[string]string, len(fields))
	for k, v := range fields {
		raw[k] = v.(string)
	}

	got, err := jobFromFields(raw)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestJobFieldsRoundTrip_ZeroValues(t *testing.T) {
	job := domain.Job{
		ID:      "job-2",
		OwnerID: "user-2",
		Prompt:  "p",
		Status:  domain.JobPending,
		Stage:   domain.StagePlanning,
	}

	fields, err := jobToFields(job)
	require.NoError(t, err)

	raw := make(map[string]string, len(fields))
	for k, v := range fields {
		raw[k] = v.(string)
	}

	got, err := jobFromFields(raw)
	require.NoError(t, err)

	assert.Nil(t, got.WorkflowPlan)
	assert.Empty(t, got.AudioURLs)
	assert.True(t, got.CompletedAt.IsZero())
	assert.Equal(t, job.Status, got.Status)
}

func TestJobFromFields_RejectsBadNumbers(t *testing.T) {
	_, err := jobFromFields(map[string]string{
		"id":       "job-3",
		"progress": "lots",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "progress")
}

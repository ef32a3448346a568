package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brandonlacoste9-tech/Koloni/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScenes() []domain.Scene {
	return []domain.Scene{
		{SceneNumber: 1, Description: "wide shot of a morning kitchen", DurationSeconds: 5},
		{SceneNumber: 2, Description: "close-up of coffee pouring", DurationSeconds: 5},
	}
}

func testWorkflow() *domain.WorkflowPlan {
	return &domain.WorkflowPlan{
		VideoType: "hunyuan",
		Steps:     []domain.WorkflowStep{{NodeID: "1", Type: "sampler"}},
	}
}

func testOptions() PipelineOptions {
	return PipelineOptions{
		PollInterval:    time.Millisecond,
		MaxPollAttempts: 3,
	}
}

func seedPendingJob(t *testing.T, store *memoryJobStore) domain.Job {
	t.Helper()
	job := domain.Job{
		ID:              "job-1",
		OwnerID:         "user-1",
		Prompt:          "a short ad about morning coffee rituals",
		DurationSeconds: 30,
		Style:           "professional",
		Status:          domain.JobPending,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, store.Create(context.Background(), job))
	return job
}

func TestPipelineRunner_FullSuccessfulRun(t *testing.T) {
	store := newMemoryJobStore()
	seedPendingJob(t, store)

	engine := &fakeGenerationEngine{
		engineJobID: "engine-42",
		statuses: []domain.EngineStatus{
			{State: domain.EngineRunning, Progress: 55},
			{State: domain.EngineCompleted, OutputVideos: []string{"https://cdn.example.com/final.mp4"}},
		},
	}
	runner := NewPipelineRunner(noopLogger{}, store,
		&fakeScenePlanner{scenes: testScenes()},
		&fakeWorkflowPlanner{plan: testWorkflow()},
		engine,
		&fakeSpeechSynthesizer{failAfter: -1},
		testOptions())

	require.NoError(t, runner.Run(context.Background(), "job-1"))

	job, err := store.Get(context.Background(), "job-1")
	require.NoError(t, err)

	assert.Equal(t, domain.JobCompleted, job.Status)
	assert.Equal(t, domain.StageCompleted, job.Stage)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, "engine-42", job.EngineJobID)
	assert.Equal(t, "https://cdn.example.com/final.mp4", job.VideoURL)
	assert.Len(t, job.AudioURLs, 2)
	assert.Empty(t, job.Error)
	assert.False(t, job.CompletedAt.IsZero())
}

func TestPipelineRunner_ProgressNeverDecreases(t *testing.T) {
	store := newMemoryJobStore()
	seedPendingJob(t, store)

	engine := &fakeGenerationEngine{
		engineJobID: "engine-42",
		statuses: []domain.EngineStatus{
			{State: domain.EngineRunning, Progress: 64},
			// The engine may report a lower value mid-run; the job's
			// progress must still be monotonic.
			{State: domain.EngineRunning, Progress: 12},
			{State: domain.EngineCompleted, OutputVideos: []string{"v.mp4"}},
		},
	}
	runner := NewPipelineRunner(noopLogger{}, store,
		&fakeScenePlanner{scenes: testScenes()},
		&fakeWorkflowPlanner{plan: testWorkflow()},
		engine,
		&fakeSpeechSynthesizer{failAfter: -1},
		PipelineOptions{PollInterval: time.Millisecond, MaxPollAttempts: 10})

	require.NoError(t, runner.Run(context.Background(), "job-1"))

	trace := store.progressTrace["job-1"]
	require.NotEmpty(t, trace)
	for i := 1; i < len(trace); i++ {
		assert.GreaterOrEqual(t, trace[i], trace[i-1],
			"progress regressed at update %d: %v", i, trace)
	}
	assert.Equal(t, 100, trace[len(trace)-1])
}

func TestPipelineRunner_ScenePlanningFailureIsFatal(t *testing.T) {
	store := newMemoryJobStore()
	seedPendingJob(t, store)

	runner := NewPipelineRunner(noopLogger{}, store,
		&fakeScenePlanner{err: errors.New("planner unavailable")},
		&fakeWorkflowPlanner{plan: testWorkflow()},
		&fakeGenerationEngine{engineJobID: "unused"},
		&fakeSpeechSynthesizer{failAfter: -1},
		testOptions())

	err := runner.Run(context.Background(), "job-1")
	require.Error(t, err)

	var upstream *domain.UpstreamServiceError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, domain.StagePlanning, upstream.Stage)

	job, getErr := store.Get(context.Background(), "job-1")
	require.NoError(t, getErr)
	assert.Equal(t, domain.JobFailed, job.Status)
	assert.Equal(t, domain.StagePlanning, job.ErrorStage)
	assert.Contains(t, job.Error, "scene planning failed")
	assert.False(t, job.CompletedAt.IsZero())
}

func TestPipelineRunner_WorkflowPlanningFailureFreezesProgress(t *testing.T) {
	store := newMemoryJobStore()
	seedPendingJob(t, store)

	engine := &fakeGenerationEngine{engineJobID: "unused"}
	runner := NewPipelineRunner(noopLogger{}, store,
		&fakeScenePlanner{scenes: testScenes()},
		&fakeWorkflowPlanner{err: errors.New("no workflow for video type")},
		engine,
		&fakeSpeechSynthesizer{failAfter: -1},
		testOptions())

	require.Error(t, runner.Run(context.Background(), "job-1"))

	job, err := store.Get(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobFailed, job.Status)
	assert.Equal(t, domain.StageWorkflowPlanning, job.ErrorStage)
	assert.NotEmpty(t, job.Error)
	// Progress stays at the value set by the last successful stage.
	assert.Equal(t, 20, job.Progress)
	assert.Empty(t, job.EngineJobID)
}

func TestPipelineRunner_EngineFailureIsFatal(t *testing.T) {
	store := newMemoryJobStore()
	seedPendingJob(t, store)

	engine := &fakeGenerationEngine{
		engineJobID: "engine-42",
		statuses: []domain.EngineStatus{
			{State: domain.EngineFailed, Error: "CUDA out of memory"},
		},
	}
	runner := NewPipelineRunner(noopLogger{}, store,
		&fakeScenePlanner{scenes: testScenes()},
		&fakeWorkflowPlanner{plan: testWorkflow()},
		engine,
		&fakeSpeechSynthesizer{failAfter: -1},
		testOptions())

	require.Error(t, runner.Run(context.Background(), "job-1"))

	job, err := store.Get(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobFailed, job.Status)
	assert.Equal(t, domain.StageGeneration, job.ErrorStage)
	assert.Contains(t, job.Error, "CUDA out of memory")
}

func TestPipelineRunner_PollExhaustionIsTimeoutFailure(t *testing.T) {
	store := newMemoryJobStore()
	seedPendingJob(t, store)

	engine := &fakeGenerationEngine{
		engineJobID: "engine-42",
		statuses:    []domain.EngineStatus{{State: domain.EngineRunning, Progress: 50}},
	}
	runner := NewPipelineRunner(noopLogger{}, store,
		&fakeScenePlanner{scenes: testScenes()},
		&fakeWorkflowPlanner{plan: testWorkflow()},
		engine,
		&fakeSpeechSynthesizer{failAfter: -1},
		testOptions())

	err := runner.Run(context.Background(), "job-1")
	require.Error(t, err)

	var timeout *domain.GenerationTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 3, timeout.Attempts)

	job, getErr := store.Get(context.Background(), "job-1")
	require.NoError(t, getErr)
	assert.Equal(t, domain.JobFailed, job.Status)
	assert.Equal(t, domain.StageGeneration, job.ErrorStage)
	assert.Equal(t, "generation timed out", job.Error)
}

func TestPipelineRunner_AudioFailureIsNonFatal(t *testing.T) {
	store := newMemoryJobStore()
	seedPendingJob(t, store)

	engine := &fakeGenerationEngine{
		engineJobID: "engine-42",
		statuses: []domain.EngineStatus{
			{State: domain.EngineCompleted, OutputVideos: []string{"v.mp4"}},
		},
	}
	speech := &fakeSpeechSynthesizer{failAfter: 1, err: errors.New("tts overloaded")}
	runner := NewPipelineRunner(noopLogger{}, store,
		&fakeScenePlanner{scenes: testScenes()},
		&fakeWorkflowPlanner{plan: testWorkflow()},
		engine,
		speech,
		testOptions())

	require.NoError(t, runner.Run(context.Background(), "job-1"))

	job, err := store.Get(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	// Audio produced before the failure is kept.
	assert.Len(t, job.AudioURLs, 1)
	require.NotEmpty(t, job.Warnings)
	assert.Contains(t, job.Warnings[0], "audio synthesis failed")
	assert.Empty(t, job.Error)
}

func TestPipelineRunner_TotalAudioFailureStillCompletes(t *testing.T) {
	store := newMemoryJobStore()
	seedPendingJob(t, store)

	engine := &fakeGenerationEngine{
		engineJobID: "engine-42",
		statuses: []domain.EngineStatus{
			{State: domain.EngineCompleted, OutputVideos: []string{"v.mp4"}},
		},
	}
	speech := &fakeSpeechSynthesizer{failAfter: 0, err: errors.New("tts down")}
	runner := NewPipelineRunner(noopLogger{}, store,
		&fakeScenePlanner{scenes: testScenes()},
		&fakeWorkflowPlanner{plan: testWorkflow()},
		engine,
		speech,
		testOptions())

	require.NoError(t, runner.Run(context.Background(), "job-1"))

	job, err := store.Get(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobCompleted, job.Status)
	assert.Empty(t, job.AudioURLs)
	assert.NotEmpty(t, job.Warnings)
}

func TestPipelineRunner_SkipsJobNotPending(t *testing.T) {
	store := newMemoryJobStore()
	job := seedPendingJob(t, store)
	require.NoError(t, store.Update(context.Background(), job.ID, domain.JobUpdate{
		Status: ptr(domain.JobProcessing),
		Stage:  ptr(domain.StagePlanning),
	}))

	scenePlanner := &fakeScenePlanner{scenes: testScenes()}
	runner := NewPipelineRunner(noopLogger{}, store,
		scenePlanner,
		&fakeWorkflowPlanner{plan: testWorkflow()},
		&fakeGenerationEngine{engineJobID: "unused"},
		&fakeSpeechSynthesizer{failAfter: -1},
		testOptions())

	require.NoError(t, runner.Run(context.Background(), job.ID))
	assert.Zero(t, scenePlanner.calls, "a claimed job must not be re-run")
}

func TestPipelineRunner_StageOrderIsTotal(t *testing.T) {
	order := []domain.JobStage{
		domain.StagePlanning,
		domain.StageWorkflowPlanning,
		domain.StageGeneration,
		domain.StageAudioSynthesis,
		domain.StageAssembly,
		domain.StageCompleted,
	}
	for i := 1; i < len(order); i++ {
		assert.Greater(t, order[i].Ordinal(), order[i-1].Ordinal())
	}
}

package services

import (
	"context"
	"sync"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type noopLogger struct{}

func (noopLogger) Info(string)                                       {}
func (noopLogger) InfoWithFields(string, map[string]interface{})     {}
func (noopLogger) Error(error, string)                               {}
func (noopLogger) ErrorWithFields(error, string, map[string]interface{}) {
}
func (noopLogger) Warn(string)                                   {}
func (noopLogger) WarnWithFields(string, map[string]interface{}) {}
func (noopLogger) Debug(string)                                  {}
func (noopLogger) DebugWithFields(string, map[string]interface{}) {
}

// memoryJobStore is an in-memory JobStorePort that mirrors the redis
// adapter's semantics, including merge-through-Apply.
type memoryJobStore struct {
	mu    sync.Mutex
	jobs  map[string]domain.Job
	queue chan string

	// progressTrace records every progress value written, in order, so
	// tests can assert monotonicity across a whole run.
	progressTrace map[string][]int
}

func newMemoryJobStore() *memoryJobStore {
	return &memoryJobStore{
		jobs:          make(map[string]domain.Job),
		queue:         make(chan string, 128),
		progressTrace: make(map[string][]int),
	}
}

func (s *memoryJobStore) Create(_ context.Context, job domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; ok {
		return domain.ErrJobExists
	}
	s.jobs[job.ID] = job
	return nil
}

func (s *memoryJobStore) Get(_ context.Context, id string) (domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return job, nil
}

func (s *memoryJobStore) Update(_ context.Context, id string, update domain.JobUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	if err := job.Apply(update); err != nil {
		return err
	}
	s.jobs[id] = job
	s.progressTrace[id] = append(s.progressTrace[id], job.Progress)
	return nil
}

func (s *memoryJobStore) Enqueue(_ context.Context, id string) error {
	s.queue <- id
	return nil
}

func (s *memoryJobStore) Dequeue(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case id := <-s.queue:
		return id, nil
	}
}

func (s *memoryJobStore) QueueLength(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.queue)), nil
}

type fakeScenePlanner struct {
	scenes []domain.Scene
	err    error
	calls  int
}

func (f *fakeScenePlanner) PlanScenes(context.Context, outbound.PlanScenesParams) ([]domain.Scene, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.scenes, nil
}

type fakeWorkflowPlanner struct {
	plan  *domain.WorkflowPlan
	err   error
	calls int
}

func (f *fakeWorkflowPlanner) PlanWorkflow(context.Context, outbound.PlanWorkflowParams) (*domain.WorkflowPlan, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

// fakeGenerationEngine replays a scripted sequence of status reports; the
// last report repeats once the script runs out.
type fakeGenerationEngine struct {
	engineJobID string
	submitErr   error
	statuses    []domain.EngineStatus
	statusErr   error

	mu          sync.Mutex
	statusCalls int
}

func (f *fakeGenerationEngine) Submit(context.Context, outbound.SubmitGenerationParams) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.engineJobID, nil
}

func (f *fakeGenerationEngine) Status(context.Context, string) (domain.EngineStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return domain.EngineStatus{}, f.statusErr
	}
	idx := f.statusCalls
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	f.statusCalls++
	return f.statuses[idx], nil
}

// fakeSpeechSynthesizer succeeds until failAfter calls have been made, then
// fails every call. failAfter < 0 means never fail.
type fakeSpeechSynthesizer struct {
	failAfter int
	err       error
	calls     int
}

func (f *fakeSpeechSynthesizer) Synthesize(_ context.Context, params outbound.SynthesizeParams) (string, error) {
	f.calls++
	if f.failAfter >= 0 && f.calls > f.failAfter {
		return "", f.err
	}
	return "https://cdn.example.com/audio/" + params.Text + ".mp3", nil
}

// goDispatcher runs every submitted task on its own goroutine.
type goDispatcher struct{}

func (goDispatcher) Submit(task func()) error {
	go task()
	return nil
}

type fakePipelineRunner struct {
	mu     sync.Mutex
	jobIDs []string
	done   chan string
}

func newFakePipelineRunner() *fakePipelineRunner {
	return &fakePipelineRunner{done: make(chan string, 128)}
}

func (f *fakePipelineRunner) Run(_ context.Context, jobID string) error {
	f.mu.Lock()
	f.jobIDs = append(f.jobIDs, jobID)
	f.mu.Unlock()
	f.done <- jobID
	return nil
}

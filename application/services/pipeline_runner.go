package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/inbound"
	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/domain"
)

// Progress marks owned by each stage. Generation clamps the engine's
// reported progress into its own sub-range so overall progress stays
// monotonic and reflects stage order.
const (
	progressClaimed          = 10
	progressScenesPlanned    = 20
	progressWorkflowPlanned  = 30
	progressEngineSubmitted  = 40
	progressGenerationDone   = 70
	progressAudioSynthesized = 85
	progressAssembly         = 90
	progressCompleted        = 100
)

type PipelineOptions struct {
	PollInterval    time.Duration
	MaxPollAttempts int
	VideoType       string
	DefaultLanguage string
	DefaultEmotion  string
}

// pipelineStage is one step of the fixed stage order. A non-required stage
// records its failure as a warning and never aborts the run.
type pipelineStage struct {
	name        domain.JobStage
	required    bool
	failMessage string
	run         func(ctx context.Context, job *domain.Job) (domain.JobUpdate, error)
}

type pipelineRunner struct {
	logger          outbound.LoggerPort
	store           outbound.JobStorePort
	scenePlanner    outbound.ScenePlannerPort
	workflowPlanner outbound.WorkflowPlannerPort
	engine          outbound.GenerationEnginePort
	speech          outbound.SpeechSynthesizerPort
	opts            PipelineOptions
}

func NewPipelineRunner(logger outbound.LoggerPort, store outbound.JobStorePort,
	scenePlanner outbound.ScenePlannerPort, workflowPlanner outbound.WorkflowPlannerPort,
	engine outbound.GenerationEnginePort, speech outbound.SpeechSynthesizerPort,
	opts PipelineOptions) inbound.PipelineRunnerPort {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.MaxPollAttempts <= 0 {
		opts.MaxPollAttempts = 120
	}
	if opts.VideoType == "" {
		opts.VideoType = "hunyuan"
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "en"
	}
	if opts.DefaultEmotion == "" {
		opts.DefaultEmotion = "neutral"
	}
	return &pipelineRunner{
		logger:          logger,
		store:           store,
		scenePlanner:    scenePlanner,
		workflowPlanner: workflowPlanner,
		engine:          engine,
		speech:          speech,
		opts:            opts,
	}
}

func (r *pipelineRunner) stages() []pipelineStage {
	return []pipelineStage{
		{domain.StagePlanning, true, "scene planning failed", r.runPlanning},
		{domain.StageWorkflowPlanning, true, "workflow planning failed", r.runWorkflowPlanning},
		{domain.StageGeneration, true, "video generation failed", r.runGeneration},
		{domain.StageAudioSynthesis, false, "audio synthesis failed", r.runAudioSynthesis},
		{domain.StageAssembly, true, "assembly failed", r.runAssembly},
	}
}

// Run executes every stage in order for one job. It is the only writer of
// the job's record; failures of required stages funnel into a single
// terminal-failed update.
func (r *pipelineRunner) Run(ctx context.Context, jobID string) error {
	job, err := r.store.Get(ctx, jobID)
	if err != nil {
		r.logger.ErrorWithFields(err, "failed to load job for pipeline run", map[string]interface{}{
			"job_id": jobID,
		})
		return err
	}

	if job.Status != domain.JobPending {
		r.logger.WarnWithFields("skipping job not in pending state", map[string]interface{}{
			"job_id": jobID,
			"status": string(job.Status),
		})
		return nil
	}

	if err := r.apply(ctx, &job, domain.JobUpdate{
		Status:   ptr(domain.JobProcessing),
		Stage:    ptr(domain.StagePlanning),
		Progress: ptr(progressClaimed),
	}); err != nil {
		return err
	}

	for _, stage := range r.stages() {
		if err := r.apply(ctx, &job, domain.JobUpdate{Stage: ptr(stage.name)}); err != nil {
			return err
		}

		update, stageErr := stage.run(ctx, &job)
		if applyErr := r.apply(ctx, &job, update); applyErr != nil {
			return applyErr
		}

		if stageErr == nil {
			continue
		}

		if !stage.required {
			warning := fmt.Sprintf("%s: %v", stage.failMessage, stageErr)
			r.logger.WarnWithFields("best-effort stage failed, continuing", map[string]interface{}{
				"job_id": job.ID,
				"stage":  string(stage.name),
				"cause":  stageErr.Error(),
			})
			if err := r.apply(ctx, &job, domain.JobUpdate{Warnings: []string{warning}}); err != nil {
				return err
			}
			continue
		}

		return r.fail(ctx, &job, stage, stageErr)
	}

	now := time.Now().UTC()
	if err := r.apply(ctx, &job, domain.JobUpdate{
		Status:      ptr(domain.JobCompleted),
		Stage:       ptr(domain.StageCompleted),
		Progress:    ptr(progressCompleted),
		CompletedAt: &now,
	}); err != nil {
		return err
	}

	r.logger.InfoWithFields("pipeline completed", map[string]interface{}{
		"job_id": job.ID,
	})
	return nil
}

func (r *pipelineRunner) runPlanning(ctx context.Context, job *domain.Job) (domain.JobUpdate, error) {
	style := map[string]string{}
	if job.Style != "" {
		style["style"] = job.Style
	}
	scenes, err := r.scenePlanner.PlanScenes(ctx, outbound.PlanScenesParams{
		Script:            job.Prompt,
		DurationSeconds:   job.DurationSeconds,
		StylePreferences:  style,
		BrandGuidelinesID: job.BrandGuidelinesID,
	})
	if err != nil {
		return domain.JobUpdate{}, err
	}
	return domain.JobUpdate{
		ScenePlan: scenes,
		Progress:  ptr(progressScenesPlanned),
	}, nil
}

func (r *pipelineRunner) runWorkflowPlanning(ctx context.Context, job *domain.Job) (domain.JobUpdate, error) {
	plan, err := r.workflowPlanner.PlanWorkflow(ctx, outbound.PlanWorkflowParams{
		Scenes:              job.ScenePlan,
		VideoType:           r.opts.VideoType,
		EditingRequirements: job.EditingInstructions,
	})
	if err != nil {
		return domain.JobUpdate{}, err
	}
	return domain.JobUpdate{
		WorkflowPlan: plan,
		Progress:     ptr(progressWorkflowPlanned),
	}, nil
}

// runGeneration submits the workflow and polls the engine until it reports
// a terminal state. Exhausting the attempt ceiling is an explicit timeout
// failure, never a silent fall-through.
func (r *pipelineRunner) runGeneration(ctx context.Context, job *domain.Job) (domain.JobUpdate, error) {
	engineJobID, err := r.engine.Submit(ctx, outbound.SubmitGenerationParams{
		Workflow: job.WorkflowPlan,
		Prompt:   job.Prompt,
	})
	if err != nil {
		return domain.JobUpdate{}, err
	}

	if err := r.apply(ctx, job, domain.JobUpdate{
		EngineJobID: &engineJobID,
		Progress:    ptr(progressEngineSubmitted),
	}); err != nil {
		return domain.JobUpdate{}, err
	}

	for attempt := 0; attempt < r.opts.MaxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return domain.JobUpdate{}, ctx.Err()
		case <-time.After(r.opts.PollInterval):
		}

		status, err := r.engine.Status(ctx, engineJobID)
		if err != nil {
			return domain.JobUpdate{}, err
		}

		switch status.State {
		case domain.EngineCompleted:
			update := domain.JobUpdate{Progress: ptr(progressGenerationDone)}
			if len(status.OutputVideos) > 0 {
				update.VideoURL = &status.OutputVideos[0]
			}
			return update, nil
		case domain.EngineFailed:
			return domain.JobUpdate{}, fmt.Errorf("engine reported failure: %s", status.Error)
		default:
			progress := clampProgress(status.Progress, job.Progress, progressEngineSubmitted, progressGenerationDone)
			if progress > job.Progress {
				if err := r.apply(ctx, job, domain.JobUpdate{Progress: ptr(progress)}); err != nil {
					return domain.JobUpdate{}, err
				}
			}
		}
	}

	return domain.JobUpdate{}, &domain.GenerationTimeoutError{
		EngineJobID: engineJobID,
		Attempts:    r.opts.MaxPollAttempts,
	}
}

// runAudioSynthesis narrates each scene description. Failures stop the
// stage but audio produced before the failure is kept; the caller treats
// the returned error as non-fatal.
func (r *pipelineRunner) runAudioSynthesis(ctx context.Context, job *domain.Job) (domain.JobUpdate, error) {
	language := job.Voice.Language
	if language == "" {
		language = r.opts.DefaultLanguage
	}
	emotion := job.Voice.Emotion
	if emotion == "" {
		emotion = r.opts.DefaultEmotion
	}

	var audioURLs []string
	for _, scene := range job.ScenePlan {
		if scene.Description == "" {
			continue
		}
		audioURL, err := r.speech.Synthesize(ctx, outbound.SynthesizeParams{
			Text:     scene.Description,
			VoiceID:  job.Voice.VoiceID,
			Language: language,
			Emotion:  emotion,
		})
		if err != nil {
			return domain.JobUpdate{AudioURLs: audioURLs}, err
		}
		audioURLs = append(audioURLs, audioURL)
	}

	update := domain.JobUpdate{AudioURLs: audioURLs}
	if len(audioURLs) > 0 {
		update.Progress = ptr(progressAudioSynthesized)
	}
	return update, nil
}

func (r *pipelineRunner) runAssembly(ctx context.Context, job *domain.Job) (domain.JobUpdate, error) {
	// Visual and audio artifacts are referenced by URL; the engine output
	// already is the final rendition, so assembly records the milestone.
	return domain.JobUpdate{Progress: ptr(progressAssembly)}, nil
}

// fail is the single fatal-failure funnel: it freezes the job at the stage
// that broke, records the cause and stamps completion.
func (r *pipelineRunner) fail(ctx context.Context, job *domain.Job, stage pipelineStage, cause error) error {
	message := fmt.Sprintf("%s: %v", stage.failMessage, cause)
	var timeout *domain.GenerationTimeoutError
	if errors.As(cause, &timeout) {
		message = "generation timed out"
	}

	now := time.Now().UTC()
	if err := r.apply(ctx, job, domain.JobUpdate{
		Status:      ptr(domain.JobFailed),
		Error:       &message,
		ErrorStage:  ptr(stage.name),
		CompletedAt: &now,
	}); err != nil {
		return err
	}

	r.logger.ErrorWithFields(cause, "pipeline failed", map[string]interface{}{
		"job_id": job.ID,
		"stage":  string(stage.name),
	})
	return &domain.UpstreamServiceError{Stage: stage.name, Err: cause}
}

// apply writes the update to the store and mirrors it onto the local
// snapshot so later stages see the artifacts of earlier ones.
func (r *pipelineRunner) apply(ctx context.Context, job *domain.Job, update domain.JobUpdate) error {
	if err := r.store.Update(ctx, job.ID, update); err != nil {
		r.logger.ErrorWithFields(err, "failed to update job record", map[string]interface{}{
			"job_id": job.ID,
		})
		return err
	}
	return job.Apply(update)
}

func clampProgress(reported, current, floor, ceiling int) int {
	progress := reported
	if progress < floor {
		progress = floor
	}
	if progress > ceiling {
		progress = ceiling
	}
	if progress < current {
		progress = current
	}
	return progress
}

func ptr[T any](v T) *T {
	return &v
}

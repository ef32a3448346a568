package domain

import "time"

type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// rank orders statuses so that Apply can reject backward moves. Completed
// and Failed share a rank: both are terminal and mutually exclusive, a job
// never moves between them.
func (s JobStatus) rank() int {
	switch s {
	case JobPending:
		return 0
	case JobProcessing:
		return 1
	case JobCompleted, JobFailed:
		return 2
	}
	return -1
}

func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

type JobStage string

const (
	StagePlanning         JobStage = "planning"
	StageWorkflowPlanning JobStage = "workflow_planning"
	StageGeneration       JobStage = "generation"
	StageAudioSynthesis   JobStage = "audio_synthesis"
	StageAssembly         JobStage = "assembly"
	StageCompleted        JobStage = "completed"
)

// Ordinal returns the position of the stage in the fixed pipeline order,
// or -1 for an unknown stage.
func (s JobStage) Ordinal() int {
	switch s {
	case StagePlanning:
		return 0
	case StageWorkflowPlanning:
		return 1
	case StageGeneration:
		return 2
	case StageAudioSynthesis:
		return 3
	case StageAssembly:
		return 4
	case StageCompleted:
		return 5
	}
	return -1
}

type Scene struct {
	SceneNumber     int               `json:"scene_number"`
	Description     string            `json:"description"`
	DurationSeconds float64           `json:"duration_seconds"`
	VisualStyle     map[string]string `json:"visual_style,omitempty"`
}

type WorkflowStep struct {
	NodeID string         `json:"node_id"`
	Type   string         `json:"type"`
	Inputs map[string]any `json:"inputs,omitempty"`
}

type WorkflowPlan struct {
	VideoType string         `json:"video_type"`
	Steps     []WorkflowStep `json:"steps"`
}

type EngineState string

const (
	EnginePending   EngineState = "pending"
	EngineRunning   EngineState = "running"
	EngineCompleted EngineState = "completed"
	EngineFailed    EngineState = "failed"
)

// EngineStatus is the generation engine's report for a submitted workflow.
type EngineStatus struct {
	State        EngineState
	Progress     int
	OutputVideos []string
	Error        string
}

type VoiceSettings struct {
	VoiceID  string `json:"voice_id,omitempty"`
	Language string `json:"language,omitempty"`
	Emotion  string `json:"emotion,omitempty"`
}

// Job is one end-to-end request to turn a script into a video. Request
// parameters are immutable after creation; everything else is mutated only
// through Apply by the job's own pipeline runner.
type Job struct {
	ID      string
	OwnerID string

	Prompt              string
	CampaignID          string
	DurationSeconds     int
	Style               string
	Voice               VoiceSettings
	EditingInstructions []string
	BrandGuidelinesID   string

	Status   JobStatus
	Stage    JobStage
	Progress int

	ScenePlan    []Scene
	WorkflowPlan *WorkflowPlan
	EngineJobID  string
	VideoURL     string
	AudioURLs    []string
	Warnings     []string

	Error      string
	ErrorStage JobStage

	CreatedAt   time.Time
	CompletedAt time.Time
}

// JobUpdate is a partial-field merge. Nil pointers mean "leave unchanged";
// AudioURLs and Warnings append rather than replace, artifacts are never
// removed.
type JobUpdate struct {
	Status   *JobStatus
	Stage    *JobStage
	Progress *int

	ScenePlan    []Scene
	WorkflowPlan *WorkflowPlan
	EngineJobID  *string
	VideoURL     *string
	AudioURLs    []string
	Warnings     []string

	Error      *string
	ErrorStage *JobStage

	CompletedAt *time.Time
}

// Apply merges an update into the job. It is the single mutation point and
// enforces the lifecycle invariants: no writes after a terminal status,
// status and stage never move backward, progress never decreases.
func (j *Job) Apply(u JobUpdate) error {
	if j.Status.Terminal() {
		return ErrJobImmutable
	}
	if u.Status != nil && u.Status.rank() < j.Status.rank() {
		return ErrStateRegression
	}
	if u.Stage != nil && u.Stage.Ordinal() < j.Stage.Ordinal() {
		return ErrStateRegression
	}
	if u.Progress != nil && *u.Progress < j.Progress {
		return ErrStateRegression
	}

	if u.Status != nil {
		j.Status = *u.Status
	}
	if u.Stage != nil {
		j.Stage = *u.Stage
	}
	if u.Progress != nil {
		j.Progress = *u.Progress
	}
	if u.ScenePlan != nil {
		j.ScenePlan = u.ScenePlan
	}
	if u.WorkflowPlan != nil {
		j.WorkflowPlan = u.WorkflowPlan
	}
	if u.EngineJobID != nil {
		j.EngineJobID = *u.EngineJobID
	}
	if u.VideoURL != nil {
		j.VideoURL = *u.VideoURL
	}
	j.AudioURLs = append(j.AudioURLs, u.AudioURLs...)
	j.Warnings = append(j.Warnings, u.Warnings...)
	if u.Error != nil {
		j.Error = *u.Error
	}
	if u.ErrorStage != nil {
		j.ErrorStage = *u.ErrorStage
	}
	if u.CompletedAt != nil && j.CompletedAt.IsZero() {
		j.CompletedAt = *u.CompletedAt
	}
	return nil
}

// JobAssets groups the artifact references exposed to status queries.
// Missing optional assets are empty values, never errors.
type JobAssets struct {
	FinalVideo          string   `json:"final_video,omitempty"`
	AudioTracks         []string `json:"audio_tracks,omitempty"`
	IntermediateRenders []string `json:"intermediate_renders,omitempty"`
}

// JobStatusView is the read-only projection returned to the job's owner.
type JobStatusView struct {
	JobID        string    `json:"job_id"`
	Status       JobStatus `json:"status"`
	Progress     int       `json:"progress"`
	CurrentStage JobStage  `json:"current_stage,omitempty"`
	Assets       JobAssets `json:"assets"`
	Warnings     []string  `json:"warnings,omitempty"`
	Error        string    `json:"error,omitempty"`
}

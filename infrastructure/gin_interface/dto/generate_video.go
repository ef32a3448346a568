package dto

import "github.com/brandonlacoste9-tech/Koloni/domain"

type VoiceSettings struct {
	VoiceID  string `json:"voice_id"`
	Language string `json:"language"`
	Emotion  string `json:"emotion"`
}

type GenerateVideoRequest struct {
	Prompt              string         `json:"prompt" binding:"required,min=10,max=2000"`
	CampaignID          string         `json:"campaign_id"`
	DurationSeconds     int            `json:"duration_seconds" binding:"omitempty,min=5,max=300"`
	Style               string         `json:"style"`
	VoiceSettings       *VoiceSettings `json:"voice_settings"`
	EditingInstructions []string       `json:"editing_instructions"`
	BrandGuidelinesID   string         `json:"brand_guidelines_id"`
}

type GenerateVideoResponse struct {
	JobID         string           `json:"job_id"`
	Status        domain.JobStatus `json:"status"`
	QueuePosition int64            `json:"queue_position"`
}

package dto

import "github.com/brandonlacoste9-tech/Koloni/domain"

type ExportVideoRequest struct {
	JobID       string          `json:"job_id" binding:"required"`
	Platform    domain.Platform `json:"platform" binding:"required"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Hashtags    []string        `json:"hashtags"`
}

type PlatformSummary struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Specs domain.PlatformSpec `json:"specs"`
}

type ListPlatformsResponse struct {
	Platforms []PlatformSummary `json:"platforms"`
}

type ServicesHealthResponse struct {
	Services   map[string]bool `json:"services"`
	AllHealthy bool            `json:"all_healthy"`
}

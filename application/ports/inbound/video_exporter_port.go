package inbound

import (
	"context"

	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type ExportVideoParams struct {
	JobID       string
	RequesterID string
	Platform    domain.Platform
	Title       string
	Description string
	Hashtags    []string
}

type ExportVideoResult struct {
	Success      bool                      `json:"success"`
	Platform     domain.Platform           `json:"platform"`
	PostID       string                    `json:"post_id"`
	PostURL      string                    `json:"url"`
	Instructions domain.ExportInstructions `json:"instructions"`
	Message      string                    `json:"message"`
}

// VideoExporterPort prepares a completed job's video for upload to a social
// platform.
type VideoExporterPort interface {
	Export(ctx context.Context, params ExportVideoParams) (ExportVideoResult, error)
}

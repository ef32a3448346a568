package services

import (
	"context"
	"fmt"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/inbound"
	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/domain"
)

type videoExporter struct {
	logger outbound.LoggerPort
	store  outbound.JobStorePort
}

func NewVideoExporter(logger outbound.LoggerPort, store outbound.JobStorePort) inbound.VideoExporterPort {
	return &videoExporter{
		logger: logger,
		store:  store,
	}
}

// Export validates ownership and completion, then returns the
// platform-formatted upload package for the job's final video. Platform
// mechanics stay data-driven; no upload is performed here.
func (e *videoExporter) Export(ctx context.Context, params inbound.ExportVideoParams) (inbound.ExportVideoResult, error) {
	if params.RequesterID == "" {
		return inbound.ExportVideoResult{}, domain.ErrAuthenticationRequired
	}
	if !params.Platform.Valid() {
		return inbound.ExportVideoResult{}, fmt.Errorf("unsupported platform %q", params.Platform)
	}

	job, err := e.store.Get(ctx, params.JobID)
	if err != nil {
		return inbound.ExportVideoResult{}, err
	}
	if job.OwnerID != params.RequesterID {
		return inbound.ExportVideoResult{}, domain.ErrAccessDenied
	}
	if job.Status != domain.JobCompleted || job.VideoURL == "" {
		return inbound.ExportVideoResult{}, domain.ErrJobNotReady
	}

	optimizedURL := params.Platform.OptimizedVideoName(job.VideoURL)
	instructions := params.Platform.BuildExportInstructions(
		optimizedURL, params.Title, params.Description, params.Hashtags)

	e.logger.InfoWithFields("video export prepared", map[string]interface{}{
		"job_id":   job.ID,
		"platform": string(params.Platform),
	})

	return inbound.ExportVideoResult{
		Success:      true,
		Platform:     params.Platform,
		PostID:       fmt.Sprintf("%s_%s", params.Platform, job.ID),
		PostURL:      fmt.Sprintf("https://%s.com/post/%s", params.Platform, job.ID),
		Instructions: instructions,
		Message:      fmt.Sprintf("video ready for upload to %s", params.Platform),
	}, nil
}

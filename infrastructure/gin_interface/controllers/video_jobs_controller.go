package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/inbound"
	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/domain"
	"github.com/brandonlacoste9-tech/Koloni/infrastructure/gin_interface/dto"
	"github.com/brandonlacoste9-tech/Koloni/middleware"
	"github.com/gin-gonic/gin"
)

const defaultDurationSeconds = 30

type VideoJobsController interface {
	GenerateVideo(c *gin.Context)
	GetJobStatus(c *gin.Context)
	ExportVideo(c *gin.Context)
	ListPlatforms(c *gin.Context)
	GetPlatformSpecs(c *gin.Context)
	Health(c *gin.Context)
	ServicesHealth(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type videoJobsController struct {
	logger        outbound.LoggerPort
	submitter     inbound.JobSubmitterPort
	statusQuery   inbound.JobStatusPort
	exporter      inbound.VideoExporterPort
	serviceHealth outbound.ServiceHealthPort
}

func NewVideoJobsController(
	logger outbound.LoggerPort,
	submitter inbound.JobSubmitterPort,
	statusQuery inbound.JobStatusPort,
	exporter inbound.VideoExporterPort,
	serviceHealth outbound.ServiceHealthPort,
) VideoJobsController {
	return &videoJobsController{
		logger:        logger,
		submitter:     submitter,
		statusQuery:   statusQuery,
		exporter:      exporter,
		serviceHealth: serviceHealth,
	}
}

func (v *videoJobsController) GenerateVideo(c *gin.Context) {
	var req dto.GenerateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := inbound.SubmitJobParams{
		OwnerID:             c.GetString(middleware.ContextUserIDKey),
		Prompt:              req.Prompt,
		CampaignID:          req.CampaignID,
		DurationSeconds:     req.DurationSeconds,
		Style:               req.Style,
		EditingInstructions: req.EditingInstructions,
		BrandGuidelinesID:   req.BrandGuidelinesID,
	}
	if params.DurationSeconds == 0 {
		params.DurationSeconds = defaultDurationSeconds
	}
	if params.Style == "" {
		params.Style = "professional"
	}
	if req.VoiceSettings != nil {
		params.Voice = domain.VoiceSettings{
			VoiceID:  req.VoiceSettings.VoiceID,
			Language: req.VoiceSettings.Language,
			Emotion:  req.VoiceSettings.Emotion,
		}
	}

	res, err := v.submitter.Submit(c.Request.Context(), params)
	if err != nil {
		v.abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateVideoResponse{
		JobID:         res.JobID,
		Status:        res.Status,
		QueuePosition: res.QueuePosition,
	})
}

func (v *videoJobsController) GetJobStatus(c *gin.Context) {
	view, err := v.statusQuery.GetStatus(
		c.Request.Context(),
		c.Param("job_id"),
		c.GetString(middleware.ContextUserIDKey),
	)
	if err != nil {
		v.abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (v *videoJobsController) ExportVideo(c *gin.Context) {
	var req dto.ExportVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := v.exporter.Export(c.Request.Context(), inbound.ExportVideoParams{
		JobID:       req.JobID,
		RequesterID: c.GetString(middleware.ContextUserIDKey),
		Platform:    req.Platform,
		Title:       req.Title,
		Description: req.Description,
		Hashtags:    req.Hashtags,
	})
	if err != nil {
		v.abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (v *videoJobsController) ListPlatforms(c *gin.Context) {
	platforms := make([]dto.PlatformSummary, 0, len(domain.Platforms()))
	for _, platform := range domain.Platforms() {
		spec, _ := platform.SpecFor()
		platforms = append(platforms, dto.PlatformSummary{
			ID:    string(platform),
			Name:  titleCase(string(platform)),
			Specs: spec,
		})
	}
	c.JSON(http.StatusOK, dto.ListPlatformsResponse{Platforms: platforms})
}

func (v *videoJobsController) GetPlatformSpecs(c *gin.Context) {
	platform := domain.Platform(c.Param("platform"))
	spec, ok := platform.SpecFor()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown platform"})
		return
	}
	c.JSON(http.StatusOK, spec)
}

func (v *videoJobsController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "video-orchestrator",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (v *videoJobsController) ServicesHealth(c *gin.Context) {
	health := v.serviceHealth.CheckAll(c.Request.Context())
	allHealthy := true
	for _, healthy := range health {
		if !healthy {
			allHealthy = false
			break
		}
	}
	c.JSON(http.StatusOK, dto.ServicesHealthResponse{
		Services:   health,
		AllHealthy: allHealthy,
	})
}

func (v *videoJobsController) RegisterRoutes(g *gin.Engine) {
	g.GET("/health", v.Health)
	g.POST("/api/video/generate", v.GenerateVideo)
	g.GET("/api/video/jobs/:job_id", v.GetJobStatus)
	g.POST("/api/video/export", v.ExportVideo)
	g.GET("/api/platforms", v.ListPlatforms)
	g.GET("/api/platforms/:platform/specs", v.GetPlatformSpecs)
	g.GET("/api/services/health", v.ServicesHealth)
}

func (v *videoJobsController) abortWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
	case errors.Is(err, domain.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, domain.ErrJobNotReady):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		v.logger.Error(err, "request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package domain

import (
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformSnapchat  Platform = "snapchat"
)

// Platforms lists every supported platform in a stable order.
func Platforms() []Platform {
	return []Platform{
		PlatformFacebook,
		PlatformInstagram,
		PlatformYouTube,
		PlatformTikTok,
		PlatformTwitter,
		PlatformLinkedIn,
		PlatformSnapchat,
	}
}

// PlatformSpec describes a platform's video upload constraints. These are
// lookup tables, not control logic.
type PlatformSpec struct {
	VideoFormats          []string `json:"video_formats"`
	MaxDurationSeconds    float64  `json:"max_duration"`
	MinDurationSeconds    float64  `json:"min_duration"`
	AspectRatios          []string `json:"aspect_ratios"`
	MaxFileSizeMB         int      `json:"max_file_size_mb"`
	RecommendedResolution string   `json:"recommended_resolution"`
	MaxResolution         string   `json:"max_resolution"`
}

var platformSpecs = map[Platform]PlatformSpec{
	PlatformFacebook: {
		VideoFormats:          []string{"mp4"},
		MaxDurationSeconds:    240,
		MinDurationSeconds:    1,
		AspectRatios:          []string{"16:9", "1:1", "4:5", "9:16"},
		MaxFileSizeMB:         1024,
		RecommendedResolution: "1280x720",
		MaxResolution:         "1920x1080",
	},
	PlatformInstagram: {
		VideoFormats:          []string{"mp4"},
		MaxDurationSeconds:    60,
		MinDurationSeconds:    3,
		AspectRatios:          []string{"1:1", "4:5", "9:16"},
		MaxFileSizeMB:         100,
		RecommendedResolution: "1080x1080",
		MaxResolution:         "1080x1350",
	},
	PlatformYouTube: {
		VideoFormats:          []string{"mp4", "mov", "avi"},
		MaxDurationSeconds:    43200,
		MinDurationSeconds:    1,
		AspectRatios:          []string{"16:9"},
		MaxFileSizeMB:         128000,
		RecommendedResolution: "1920x1080",
		MaxResolution:         "7680x4320",
	},
	PlatformTikTok: {
		VideoFormats:          []string{"mp4"},
		MaxDurationSeconds:    180,
		MinDurationSeconds:    3,
		AspectRatios:          []string{"9:16"},
		MaxFileSizeMB:         287,
		RecommendedResolution: "1080x1920",
		MaxResolution:         "1080x1920",
	},
	PlatformTwitter: {
		VideoFormats:          []string{"mp4"},
		MaxDurationSeconds:    140,
		MinDurationSeconds:    0.5,
		AspectRatios:          []string{"16:9", "1:1"},
		MaxFileSizeMB:         512,
		RecommendedResolution: "1280x720",
		MaxResolution:         "1920x1080",
	},
	PlatformLinkedIn: {
		VideoFormats:          []string{"mp4"},
		MaxDurationSeconds:    600,
		MinDurationSeconds:    3,
		AspectRatios:          []string{"16:9", "1:1"},
		MaxFileSizeMB:         200,
		RecommendedResolution: "1280x720",
		MaxResolution:         "1920x1080",
	},
	PlatformSnapchat: {
		VideoFormats:          []string{"mp4"},
		MaxDurationSeconds:    60,
		MinDurationSeconds:    1,
		AspectRatios:          []string{"9:16"},
		MaxFileSizeMB:         32,
		RecommendedResolution: "1080x1920",
		MaxResolution:         "1080x1920",
	},
}

// SpecFor returns the upload constraints for a platform.
func (p Platform) SpecFor() (PlatformSpec, bool) {
	spec, ok := platformSpecs[p]
	return spec, ok
}

func (p Platform) Valid() bool {
	_, ok := platformSpecs[p]
	return ok
}

// ValidationResult reports whether a video fits a platform's constraints.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// ValidateVideo checks duration and resolution against the platform spec.
// Zero values are treated as unknown and skipped.
func (p Platform) ValidateVideo(durationSeconds float64, resolution string) ValidationResult {
	spec, ok := platformSpecs[p]
	res := ValidationResult{Issues: []string{}, Warnings: []string{}}
	if !ok {
		res.Issues = append(res.Issues, fmt.Sprintf("unknown platform %q", p))
		return res
	}
	if durationSeconds > 0 {
		if durationSeconds > spec.MaxDurationSeconds {
			res.Issues = append(res.Issues,
				fmt.Sprintf("duration %.1fs exceeds maximum %.1fs", durationSeconds, spec.MaxDurationSeconds))
		}
		if durationSeconds < spec.MinDurationSeconds {
			res.Issues = append(res.Issues,
				fmt.Sprintf("duration %.1fs is below minimum %.1fs", durationSeconds, spec.MinDurationSeconds))
		}
	}
	if resolution != "" && resolution != spec.RecommendedResolution {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("resolution %s differs from recommended %s", resolution, spec.RecommendedResolution))
	}
	res.Valid = len(res.Issues) == 0
	return res
}

// ExportContent is the platform-formatted post content.
type ExportContent map[string]any

// ExportInstructions bundles everything a client needs to upload a video
// to one platform.
type ExportInstructions struct {
	Platform       Platform      `json:"platform"`
	VideoURL       string        `json:"video_url"`
	Specifications PlatformSpec  `json:"specifications"`
	Content        ExportContent `json:"content"`
}

// BuildExportInstructions formats title, description and hashtags the way
// each platform expects them.
func (p Platform) BuildExportInstructions(videoURL, title, description string, hashtags []string) ExportInstructions {
	spec, _ := platformSpecs[p]
	ins := ExportInstructions{
		Platform:       p,
		VideoURL:       videoURL,
		Specifications: spec,
		Content:        ExportContent{},
	}

	tagged := make([]string, 0, len(hashtags))
	for _, tag := range hashtags {
		tagged = append(tagged, "#"+tag)
	}

	switch p {
	case PlatformYouTube:
		if title == "" {
			title = "Generated Video"
		}
		ins.Content = ExportContent{
			"title":       title,
			"description": description,
			"tags":        hashtags,
			"category":    "Entertainment",
			"privacy":     "public",
		}
	case PlatformInstagram:
		ins.Content = ExportContent{
			"caption":  title + "\n\n" + description + "\n\n" + strings.Join(tagged, " "),
			"hashtags": hashtags,
		}
	case PlatformFacebook:
		ins.Content = ExportContent{
			"title":       title,
			"description": description,
			"tags":        hashtags,
		}
	case PlatformTikTok:
		ins.Content = ExportContent{
			"caption":  strings.TrimSpace(title + " " + strings.Join(tagged, " ")),
			"hashtags": hashtags,
		}
	case PlatformTwitter:
		ins.Content = ExportContent{
			"text":     strings.TrimSpace(title + " " + videoURL),
			"hashtags": hashtags,
		}
	case PlatformLinkedIn:
		ins.Content = ExportContent{
			"text":     title + "\n\n" + description,
			"hashtags": hashtags,
		}
	case PlatformSnapchat:
		ins.Content = ExportContent{
			"caption":  title,
			"hashtags": hashtags,
		}
	}
	return ins
}

// OptimizedVideoName derives the name of the platform-optimized rendition
// of a source video.
func (p Platform) OptimizedVideoName(sourceURL string) string {
	return fmt.Sprintf("%s_%s.mp4", sourceURL, p)
}

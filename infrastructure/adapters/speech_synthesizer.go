package adapters

import (
	"context"
	"fmt"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/config"
)

type synthesizeRequest struct {
	Text     string  `json:"text"`
	VoiceID  string  `json:"voice_id"`
	Language string  `json:"language"`
	Emotion  string  `json:"emotion,omitempty"`
	Speed    float64 `json:"speed"`
	Format   string  `json:"format"`
}

type synthesizeResponse struct {
	AudioURL string `json:"audio_url"`
}

type speechSynthesizer struct {
	fetcher ContentFetcher
	cfg     *config.SpeechSynthesizerConfig
	logger  outbound.LoggerPort
}

func NewSpeechSynthesizer(fetcher ContentFetcher, cfg *config.SpeechSynthesizerConfig, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &speechSynthesizer{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *speechSynthesizer) Synthesize(ctx context.Context, params outbound.SynthesizeParams) (string, error) {
	voiceID := params.VoiceID
	if voiceID == "" {
		voiceID = "default"
	}
	language := params.Language
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	reqBody := synthesizeRequest{
		Text:     params.Text,
		VoiceID:  voiceID,
		Language: language,
		Emotion:  params.Emotion,
		Speed:    1.0,
		Format:   "mp3",
	}

	var res synthesizeResponse
	if err := s.fetcher.PostJSON(ctx, s.cfg.ApiUrl+"/synthesize", reqBody, &res); err != nil {
		s.logger.ErrorWithFields(err, "speech synthesis request failed", map[string]interface{}{
			"url": s.cfg.ApiUrl,
		})
		return "", fmt.Errorf("speech synthesizer: %w", err)
	}
	if res.AudioURL == "" {
		return "", fmt.Errorf("speech synthesizer: empty audio url in response")
	}
	return res.AudioURL, nil
}

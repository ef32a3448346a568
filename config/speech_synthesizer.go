package config

import (
	"fmt"
	"os"
)

type SpeechSynthesizerConfig struct {
	ApiUrl          string
	DefaultLanguage string
	DefaultEmotion  string
}

func GetSpeechSynthesizerConfig() (*SpeechSynthesizerConfig, error) {
	apiUrl := os.Getenv("SPEECH_SYNTHESIZER_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("SPEECH_SYNTHESIZER_API_URL must be set")
	}

	language := os.Getenv("SPEECH_DEFAULT_LANGUAGE")
	if language == "" {
		language = "en"
	}

	emotion := os.Getenv("SPEECH_DEFAULT_EMOTION")
	if emotion == "" {
		emotion = "neutral"
	}

	return &SpeechSynthesizerConfig{
		ApiUrl:          apiUrl,
		DefaultLanguage: language,
		DefaultEmotion:  emotion,
	}, nil
}

package outbound

import "context"

type SynthesizeParams struct {
	Text     string
	VoiceID  string
	Language string
	Emotion  string
}

// SpeechSynthesizerPort produces narration audio and returns a reference to
// the stored result.
type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, params SynthesizeParams) (string, error)
}

// Package transcribe selects the speech-to-text backend the pipeline uses.
package transcribe

import (
	"context"
	"fmt"
	"net/http"

	"hookscript/internal/config"
	"hookscript/internal/script"
	"hookscript/internal/services/deepgram"
	"hookscript/internal/services/whisperx"
)

// Transcriber turns an audio file into ordered, speaker-tagged utterances.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audioPath string) ([]script.Utterance, error)
}

// Option customizes backend construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the HTTP client used by network backends.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// New builds the backend named by cfg.Transcription.Backend.
func New(cfg *config.Config, opts ...Option) (Transcriber, error) {
	if cfg == nil {
		return nil, fmt.Errorf("transcribe: config is nil")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch cfg.Transcription.Backend {
	case config.BackendDeepgram:
		if err := cfg.RequireTranscription(); err != nil {
			return nil, err
		}
		var clientOpts []deepgram.Option
		if o.httpClient != nil {
			clientOpts = append(clientOpts, deepgram.WithHTTPClient(o.httpClient))
		}
		return deepgram.NewClient(deepgram.Config{
			APIKey:   cfg.Deepgram.APIKey,
			BaseURL:  cfg.Deepgram.BaseURL,
			Model:    cfg.Deepgram.Model,
			Language: cfg.Transcription.Language,
			Timeout:  cfg.DeepgramTimeout(),
		}, clientOpts...), nil
	case config.BackendWhisperX:
		return whisperx.NewService(whisperx.Config{
			Model:       cfg.WhisperX.Model,
			CUDAEnabled: cfg.WhisperX.CUDAEnabled,
			HFToken:     cfg.WhisperX.HFToken,
			Language:    cfg.LanguageBase(),
		}, cfg.Download.FFmpegBinary), nil
	default:
		return nil, fmt.Errorf("transcribe: unsupported backend %q", cfg.Transcription.Backend)
	}
}
